package services_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/domain/errors"
	"github.com/biabrauna/econsciente-api/internal/domain/repositories"
	"github.com/biabrauna/econsciente-api/internal/services"
)

var _ = Describe("UserService", func() {
	var h *harness

	BeforeEach(func() {
		h = newHarness()
	})

	Describe("UpdateProfile", func() {
		It("recompensa apenas a primeira biografia", func() {
			user := h.createUser("bio")
			bio := "<p>Ciclista urbana</p>"

			updated, err := h.userSvc.UpdateProfile(h.ctx, user.ID, user.ID, services.UpdateProfileInput{Biography: &bio})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Biography).To(Equal("Ciclista urbana"))
			Expect(updated.BioRewarded).To(BeTrue())

			// 10 pela biografia + 50 da etapa bio
			Expect(h.reload(user.ID).Points).To(Equal(60))

			other := "Ciclista e jardineira"
			_, err = h.userSvc.UpdateProfile(h.ctx, user.ID, user.ID, services.UpdateProfileInput{Biography: &other})
			Expect(err).NotTo(HaveOccurred())
			Expect(h.reload(user.ID).Points).To(Equal(60))
		})

		It("não recompensa biografia vazia", func() {
			user := h.createUser("vazia")
			empty := "   "

			_, err := h.userSvc.UpdateProfile(h.ctx, user.ID, user.ID, services.UpdateProfileInput{Biography: &empty})
			Expect(err).NotTo(HaveOccurred())
			Expect(h.reload(user.ID).Points).To(BeZero())
		})

		It("proíbe editar outro usuário sem ser admin", func() {
			a, b := h.createUser("um"), h.createUser("dois")
			name := "Invasor"

			_, err := h.userSvc.UpdateProfile(h.ctx, a.ID, b.ID, services.UpdateProfileInput{Name: &name})
			Expect(err).To(MatchError(errors.ErrForbidden))
		})

		It("rejeita data de nascimento fora dos limites", func() {
			user := h.createUser("datas")
			future := time.Now().AddDate(1, 0, 0)

			_, err := h.userSvc.UpdateProfile(h.ctx, user.ID, user.ID, services.UpdateProfileInput{BirthDate: &future})
			Expect(err).To(MatchError(errors.ErrInvalidBirthDate))
		})
	})

	Describe("DeleteUser", func() {
		It("remove as arestas e ajusta os contadores dos demais", func() {
			gone, stay := h.createUser("sai"), h.createUser("fica")
			Expect(h.followSvc.Follow(h.ctx, gone.ID, stay.ID)).To(Succeed())
			Expect(h.followSvc.Follow(h.ctx, stay.ID, gone.ID)).To(Succeed())

			Expect(h.userSvc.DeleteUser(h.ctx, gone.ID, gone.ID)).To(Succeed())

			remaining := h.reload(stay.ID)
			Expect(remaining.Followers).To(BeZero())
			Expect(remaining.Following).To(BeZero())

			_, err := h.userSvc.GetUser(h.ctx, gone.ID)
			Expect(err).To(MatchError(errors.ErrUserNotFound))
		})

		It("permite que um admin remova outro usuário", func() {
			admin := h.createUser("admin")
			admin.Role = entities.RoleAdmin
			Expect(h.users.Update(h.ctx, admin)).To(Succeed())
			target := h.createUser("alvo")

			Expect(h.userSvc.DeleteUser(h.ctx, admin.ID, target.ID)).To(Succeed())
		})
	})

	Describe("ListUsers", func() {
		It("filtra por nome e retorna o total", func() {
			h.createUser("carla")
			h.createUser("carlos")
			h.createUser("pedro")

			users, total, err := h.userSvc.ListUsers(h.ctx, repositories.UserFilters{Search: "carl"})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(BeEquivalentTo(2))
			Expect(users).To(HaveLen(2))
		})
	})
})

var _ = Describe("AuthService", func() {
	var h *harness

	BeforeEach(func() {
		h = newHarness()
	})

	validInput := func() services.RegisterInput {
		return services.RegisterInput{
			Email:           "Nova@Example.com",
			Name:            "Nova Pessoa",
			Password:        "segredo123",
			ConfirmPassword: "segredo123",
			BirthDate:       time.Now().AddDate(-20, 0, 0),
		}
	}

	It("registra e autentica com JWT e sessão", func() {
		user, err := h.authSvc.Register(h.ctx, validInput())
		Expect(err).NotTo(HaveOccurred())
		Expect(user.Email.String()).To(Equal("nova@example.com"))
		Expect(user.Role).To(Equal(entities.RoleUser))

		result, err := h.authSvc.Login(h.ctx, services.LoginInput{Email: "nova@example.com", Password: "segredo123"})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.AccessToken).NotTo(BeEmpty())
		Expect(result.Session.Token).To(HaveLen(64))

		byToken, err := h.authSvc.Authenticate(h.ctx, result.AccessToken)
		Expect(err).NotTo(HaveOccurred())
		Expect(byToken.ID).To(Equal(user.ID))

		bySession, err := h.authSvc.AuthenticateSession(h.ctx, result.Session.Token)
		Expect(err).NotTo(HaveOccurred())
		Expect(bySession.ID).To(Equal(user.ID))

		Expect(h.authSvc.Logout(h.ctx, user.ID)).To(Succeed())
		_, err = h.authSvc.AuthenticateSession(h.ctx, result.Session.Token)
		Expect(err).To(MatchError(errors.ErrSessionInvalid))
	})

	It("rejeita senha incorreta", func() {
		_, err := h.authSvc.Register(h.ctx, validInput())
		Expect(err).NotTo(HaveOccurred())

		_, err = h.authSvc.Login(h.ctx, services.LoginInput{Email: "nova@example.com", Password: "errada"})
		Expect(err).To(MatchError(errors.ErrInvalidCredentials))
	})

	It("rejeita email duplicado", func() {
		_, err := h.authSvc.Register(h.ctx, validInput())
		Expect(err).NotTo(HaveOccurred())

		_, err = h.authSvc.Register(h.ctx, validInput())
		Expect(err).To(MatchError(errors.ErrEmailAlreadyExists))
	})

	DescribeTable("valida o cadastro",
		func(mutate func(*services.RegisterInput), expected error) {
			input := validInput()
			mutate(&input)

			_, err := h.authSvc.Register(h.ctx, input)
			Expect(err).To(MatchError(expected))
		},
		Entry("senhas diferentes", func(in *services.RegisterInput) { in.ConfirmPassword = "outra" }, errors.ErrPasswordMismatch),
		Entry("menor de 13 anos", func(in *services.RegisterInput) { in.BirthDate = time.Now().AddDate(-10, 0, 0) }, errors.ErrUnderage),
		Entry("idade acima de 120", func(in *services.RegisterInput) { in.BirthDate = time.Now().AddDate(-130, 0, 0) }, errors.ErrInvalidBirthDate),
		Entry("email inválido", func(in *services.RegisterInput) { in.Email = "sem-arroba" }, errors.ErrInvalidEmail),
	)
})

var _ = Describe("SessionService", func() {
	var h *harness

	BeforeEach(func() {
		h = newHarness()
	})

	It("invalida sessões expiradas e as remove na limpeza", func() {
		user := h.createUser("sessao")
		session, err := h.sessionSvc.Create(h.ctx, services.SessionInput{UserID: user.ID, IPAddress: "127.0.0.1"})
		Expect(err).NotTo(HaveOccurred())

		active, err := h.sessionSvc.ListActive(h.ctx, user.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(active).To(HaveLen(1))

		removed, err := h.sessionSvc.CleanupExpired(h.ctx, time.Now().Add(2*time.Hour))
		Expect(err).NotTo(HaveOccurred())
		Expect(removed).To(BeEquivalentTo(1))

		_, err = h.sessionSvc.Validate(h.ctx, session.Token)
		Expect(err).To(MatchError(errors.ErrSessionInvalid))
	})

	It("encerra todas as sessões do usuário", func() {
		user := h.createUser("varias")
		for i := 0; i < 2; i++ {
			_, err := h.sessionSvc.Create(h.ctx, services.SessionInput{UserID: user.ID})
			Expect(err).NotTo(HaveOccurred())
		}

		Expect(h.sessionSvc.InvalidateAll(h.ctx, user.ID)).To(Succeed())
		Expect(h.sessionSvc.ListActive(h.ctx, user.ID)).To(BeEmpty())
	})
})

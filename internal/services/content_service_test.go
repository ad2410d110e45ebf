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

var _ = Describe("PostService", func() {
	var (
		h      *harness
		author *entities.User
	)

	BeforeEach(func() {
		h = newHarness()
		author = h.createUser("autora")
	})

	It("concede pontos ao publicar e dispara a conquista de primeira publicação", func() {
		h.createAchievement("Primeira Publicação", entities.SocialCriterion{Action: entities.SocialFirstPost}, 10)

		post, err := h.postSvc.Create(h.ctx, author.ID, "https://cdn.example.com/p.jpg")
		Expect(err).NotTo(HaveOccurred())
		Expect(post.ID).NotTo(BeEmpty())

		Expect(h.reload(author.ID).Points).To(Equal(10 + 10))
		Expect(h.queue.Names()).To(ContainElements("achievements.create_post", "achievements.earn_points"))
	})

	It("rejeita URL inválida", func() {
		_, err := h.postSvc.Create(h.ctx, author.ID, "javascript:alert(1)")
		Expect(err).To(MatchError(errors.ErrInvalidInput))
	})

	It("curte uma única vez e notifica o dono", func() {
		fan := h.createUser("fa")
		post, err := h.postSvc.Create(h.ctx, author.ID, "https://cdn.example.com/p.jpg")
		Expect(err).NotTo(HaveOccurred())

		Expect(h.postSvc.Like(h.ctx, post.ID, fan.ID)).To(Succeed())
		Expect(h.postSvc.Like(h.ctx, post.ID, fan.ID)).To(MatchError(errors.ErrAlreadyLiked))

		reloaded, err := h.postSvc.Get(h.ctx, post.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(reloaded.Likes).To(Equal(1))
		Expect(h.notificationsOf(author.ID, entities.NotificationLike)).To(HaveLen(1))

		Expect(h.postSvc.Unlike(h.ctx, post.ID, fan.ID)).To(Succeed())
		Expect(h.postSvc.Unlike(h.ctx, post.ID, fan.ID)).To(MatchError(errors.ErrNotLiked))
	})

	It("não notifica curtida no próprio post", func() {
		post, err := h.postSvc.Create(h.ctx, author.ID, "https://cdn.example.com/p.jpg")
		Expect(err).NotTo(HaveOccurred())

		Expect(h.postSvc.Like(h.ctx, post.ID, author.ID)).To(Succeed())
		Expect(h.notificationsOf(author.ID, entities.NotificationLike)).To(BeEmpty())
	})

	It("pagina o feed", func() {
		for i := 0; i < 3; i++ {
			_, err := h.postSvc.Create(h.ctx, author.ID, "https://cdn.example.com/p.jpg")
			Expect(err).NotTo(HaveOccurred())
		}

		page, err := h.postSvc.List(h.ctx, repositories.Pagination{Page: 1, PageSize: 2})
		Expect(err).NotTo(HaveOccurred())
		Expect(page).To(HaveLen(2))

		page, err = h.postSvc.List(h.ctx, repositories.Pagination{Page: 2, PageSize: 2})
		Expect(err).NotTo(HaveOccurred())
		Expect(page).To(HaveLen(1))
	})
})

var _ = Describe("CommentService", func() {
	var (
		h      *harness
		author *entities.User
		post   *entities.Post
	)

	BeforeEach(func() {
		h = newHarness()
		author = h.createUser("dona")

		var err error
		post, err = h.postSvc.Create(h.ctx, author.ID, "https://cdn.example.com/p.jpg")
		Expect(err).NotTo(HaveOccurred())
	})

	It("sanitiza o texto e notifica o dono", func() {
		visitor := h.createUser("visita")

		comment, err := h.commentSvc.Create(h.ctx, post.ID, visitor.ID, "<script>x</script><b>Lindo!</b>")
		Expect(err).NotTo(HaveOccurred())
		Expect(comment.Text).To(Equal("Lindo!"))
		Expect(comment.UserName).To(Equal("visita"))

		Expect(h.notificationsOf(author.ID, entities.NotificationComment)).To(HaveLen(1))
		Expect(h.commentSvc.Count(h.ctx, post.ID)).To(BeEquivalentTo(1))
	})

	It("rejeita comentário vazio após sanitização", func() {
		_, err := h.commentSvc.Create(h.ctx, post.ID, author.ID, "<img src=x>")
		Expect(err).To(MatchError(errors.ErrInvalidInput))
	})

	It("retorna NotFound para post inexistente", func() {
		_, err := h.commentSvc.Create(h.ctx, "nao-existe", author.ID, "oi")
		Expect(err).To(MatchError(errors.ErrPostNotFound))
	})

	It("só o autor remove o comentário", func() {
		visitor := h.createUser("outra")
		comment, err := h.commentSvc.Create(h.ctx, post.ID, visitor.ID, "oi")
		Expect(err).NotTo(HaveOccurred())

		Expect(h.commentSvc.Remove(h.ctx, comment.ID, author.ID)).To(MatchError(errors.ErrForbidden))
		Expect(h.commentSvc.Remove(h.ctx, comment.ID, visitor.ID)).To(Succeed())
		Expect(h.commentSvc.Remove(h.ctx, comment.ID, visitor.ID)).To(MatchError(errors.ErrCommentNotFound))
	})

	It("permite que um moderador remova comentário alheio", func() {
		moderator := h.createUser("moderadora")
		moderator.Role = entities.RoleAdmin
		Expect(h.users.Update(h.ctx, moderator)).To(Succeed())

		comment, err := h.commentSvc.Create(h.ctx, post.ID, author.ID, "spam")
		Expect(err).NotTo(HaveOccurred())

		Expect(h.commentSvc.Remove(h.ctx, comment.ID, moderator.ID)).To(Succeed())
		Expect(h.commentSvc.Count(h.ctx, post.ID)).To(BeZero())
	})
})

var _ = Describe("ProfilePicService", func() {
	var (
		h    *harness
		user *entities.User
	)

	BeforeEach(func() {
		h = newHarness()
		user = h.createUser("foto")
	})

	It("concede pontos apenas no primeiro upload", func() {
		h.createAchievement("Primeira Foto", entities.ProfileActionCriterion{Action: entities.ProfileUploadPic}, 10)

		_, err := h.profilePicSvc.Upload(h.ctx, user.ID, "https://cdn.example.com/1.png")
		Expect(err).NotTo(HaveOccurred())
		afterFirst := h.reload(user.ID).Points

		pic, err := h.profilePicSvc.Upload(h.ctx, user.ID, "https://cdn.example.com/2.png")
		Expect(err).NotTo(HaveOccurred())
		Expect(pic.URL).To(HaveSuffix("2.png"))

		Expect(afterFirst).To(Equal(20 + 100 + 10))
		Expect(h.reload(user.ID).Points).To(Equal(afterFirst))

		current, err := h.profilePicSvc.Get(h.ctx, user.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(current.URL).To(HaveSuffix("2.png"))
	})

	It("retorna NotFound sem foto", func() {
		_, err := h.profilePicSvc.Get(h.ctx, user.ID)
		Expect(err).To(MatchError(errors.ErrProfilePicNotFound))
	})
})

var _ = Describe("ChallengeService", func() {
	var h *harness

	BeforeEach(func() {
		h = newHarness()
	})

	It("conclui cada desafio uma única vez", func() {
		user := h.createUser("eco")
		challenge := h.createChallenge(50)

		_, err := h.challengeSvc.Complete(h.ctx, user.ID, challenge.ID)
		Expect(err).NotTo(HaveOccurred())

		_, err = h.challengeSvc.Complete(h.ctx, user.ID, challenge.ID)
		Expect(err).To(MatchError(errors.ErrChallengeAlreadyComplete))

		// 50 do desafio + 200 da etapa firstChallenge
		Expect(h.reload(user.ID).Points).To(Equal(250))

		done, err := h.challengeSvc.ListCompleted(h.ctx, user.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(done).To(HaveLen(1))
	})

	It("retorna NotFound para desafio inexistente", func() {
		user := h.createUser("eco")

		_, err := h.challengeSvc.Complete(h.ctx, user.ID, "nao-existe")
		Expect(err).To(MatchError(errors.ErrChallengeNotFound))
	})

	It("busca sem diferenciar maiúsculas", func() {
		h.createChallenge(10)
		_, err := h.challengeSvc.Create(h.ctx, "Plantar uma árvore", 30)
		Expect(err).NotTo(HaveOccurred())

		found, err := h.challengeSvc.Search(h.ctx, "PLANTAR")
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(HaveLen(1))

		all, err := h.challengeSvc.Search(h.ctx, "  ")
		Expect(err).NotTo(HaveOccurred())
		Expect(all).To(HaveLen(2))
	})
})

var _ = Describe("NotificationService", func() {
	var (
		h    *harness
		user *entities.User
	)

	BeforeEach(func() {
		h = newHarness()
		user = h.createUser("avisos")
	})

	It("marca como lida apenas notificações do próprio usuário", func() {
		other := h.createUser("intrusa")
		n, err := h.notificationSvc.Create(h.ctx, sampleNotification(user.ID))
		Expect(err).NotTo(HaveOccurred())

		Expect(h.notificationSvc.MarkAsRead(h.ctx, n.ID, other.ID)).To(MatchError(errors.ErrNotificationNotFound))
		Expect(h.notificationSvc.CountUnread(h.ctx, user.ID)).To(BeEquivalentTo(1))

		Expect(h.notificationSvc.MarkAsRead(h.ctx, n.ID, user.ID)).To(Succeed())
		Expect(h.notificationSvc.CountUnread(h.ctx, user.ID)).To(BeZero())
	})

	It("marca todas como lidas", func() {
		for i := 0; i < 3; i++ {
			_, err := h.notificationSvc.Create(h.ctx, sampleNotification(user.ID))
			Expect(err).NotTo(HaveOccurred())
		}

		Expect(h.notificationSvc.MarkAllAsRead(h.ctx, user.ID)).To(BeEquivalentTo(3))

		unread, err := h.notificationSvc.ListByUser(h.ctx, user.ID, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(unread).To(BeEmpty())
	})

	It("remove apenas lidas além da retenção", func() {
		read, err := h.notificationSvc.Create(h.ctx, sampleNotification(user.ID))
		Expect(err).NotTo(HaveOccurred())
		_, err = h.notificationSvc.Create(h.ctx, sampleNotification(user.ID))
		Expect(err).NotTo(HaveOccurred())
		Expect(h.notificationSvc.MarkAsRead(h.ctx, read.ID, user.ID)).To(Succeed())

		Expect(h.notificationSvc.CleanOld(h.ctx, time.Now())).To(BeZero())
		Expect(h.notificationSvc.CleanOld(h.ctx, time.Now().Add(entities.NotificationRetention+time.Hour))).To(BeEquivalentTo(1))

		remaining, err := h.notificationSvc.ListByUser(h.ctx, user.ID, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(remaining).To(HaveLen(1))
		Expect(remaining[0].Read).To(BeFalse())
	})
})

func sampleNotification(userID string) services.CreateNotificationInput {
	return services.CreateNotificationInput{
		UserID:   userID,
		Type:     entities.NotificationAchievement,
		Title:    "Título",
		Message:  "Mensagem",
		Metadata: map[string]any{"origem": "teste"},
	}
}

package services_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/domain/errors"
)

var _ = Describe("OnboardingService", func() {
	var (
		h    *harness
		user *entities.User
	)

	BeforeEach(func() {
		h = newHarness()
		user = h.createUser("lara")
	})

	It("soma 400 pontos ao concluir as três etapas", func() {
		r, err := h.onboardingSvc.CompleteStep(h.ctx, user.ID, entities.StepProfilePic)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Applied).To(BeTrue())
		Expect(r.Points).To(Equal(100))
		Expect(r.Completed).To(BeFalse())

		_, err = h.onboardingSvc.CompleteStep(h.ctx, user.ID, entities.StepBio)
		Expect(err).NotTo(HaveOccurred())

		r, err = h.onboardingSvc.CompleteStep(h.ctx, user.ID, entities.StepFirstChallenge)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Points).To(Equal(200))
		Expect(r.Bonus).To(Equal(50))
		Expect(r.Completed).To(BeTrue())

		status, err := h.onboardingSvc.GetStatus(h.ctx, user.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(status.Completed).To(BeTrue())
		Expect(status.TotalPoints).To(Equal(400))
		Expect(status.Steps.AllDone()).To(BeTrue())

		Expect(h.notificationsOf(user.ID, entities.NotificationOnboarding)).To(HaveLen(3))
	})

	It("não concede pontos duas vezes pela mesma etapa", func() {
		_, err := h.onboardingSvc.CompleteStep(h.ctx, user.ID, entities.StepBio)
		Expect(err).NotTo(HaveOccurred())

		r, err := h.onboardingSvc.CompleteStep(h.ctx, user.ID, entities.StepBio)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Applied).To(BeFalse())

		Expect(h.reload(user.ID).Points).To(Equal(50))
		Expect(h.reload(user.ID).OnboardingSteps.IsDone(entities.StepBio)).To(BeTrue())
	})

	It("ignora etapas depois de concluído", func() {
		for _, step := range []entities.OnboardingStep{entities.StepProfilePic, entities.StepBio, entities.StepFirstChallenge} {
			_, err := h.onboardingSvc.CompleteStep(h.ctx, user.ID, step)
			Expect(err).NotTo(HaveOccurred())
		}

		r, err := h.onboardingSvc.CompleteStep(h.ctx, user.ID, entities.StepBio)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Applied).To(BeFalse())
		Expect(r.Completed).To(BeTrue())
		Expect(h.reload(user.ID).Points).To(Equal(400))
	})

	It("rejeita etapa desconhecida", func() {
		_, err := h.onboardingSvc.CompleteStepByName(h.ctx, user.ID, "avatar")
		Expect(err).To(MatchError(errors.ErrInvalidOnboardingStep))
	})

	It("só conclui bio quando a biografia existe", func() {
		r, err := h.onboardingSvc.CheckAndCompleteBio(h.ctx, user.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Applied).To(BeFalse())

		user.Biography = "Amo trilhas"
		Expect(h.users.Update(h.ctx, user)).To(Succeed())

		r, err = h.onboardingSvc.CheckAndCompleteBio(h.ctx, user.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Applied).To(BeTrue())
	})

	It("conclui a etapa de foto pelo upload", func() {
		_, err := h.profilePicSvc.Upload(h.ctx, user.ID, "https://cdn.example.com/a.png")
		Expect(err).NotTo(HaveOccurred())

		reloaded := h.reload(user.ID)
		Expect(reloaded.OnboardingSteps.IsDone(entities.StepProfilePic)).To(BeTrue())
		Expect(reloaded.Points).To(Equal(20 + 100))
	})
})

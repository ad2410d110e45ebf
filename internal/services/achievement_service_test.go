package services_test

import (
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/domain/errors"
	"github.com/biabrauna/econsciente-api/internal/services"
)

var _ = Describe("AchievementService", func() {
	var h *harness

	BeforeEach(func() {
		h = newHarness()
	})

	Describe("Create", func() {
		It("rejeita critério inválido", func() {
			_, err := h.achievementSvc.Create(h.ctx, services.CreateAchievementInput{
				Name:      "Quebrada",
				Criterion: `{"type":"desconhecido"}`,
			})
			Expect(err).To(MatchError(errors.ErrInvalidCriterion))
		})

		It("rejeita nome duplicado", func() {
			h.createAchievement("Única", entities.TotalPointsCriterion{Amount: 10}, 0)

			_, err := h.achievementSvc.Create(h.ctx, services.CreateAchievementInput{
				Name:      "Única",
				Criterion: entities.EncodeCriterion(entities.TotalPointsCriterion{Amount: 20}),
			})
			Expect(err).To(MatchError(errors.ErrAchievementNameTaken))
		})
	})

	Describe("Unlock", func() {
		It("desbloqueia uma única vez e concede a recompensa uma vez", func() {
			user := h.createUser("ana")
			a := h.createAchievement("Manual", entities.TotalPointsCriterion{Amount: 1000}, 25)

			first, err := h.achievementSvc.Unlock(h.ctx, user.ID, a.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(first).To(BeTrue())

			second, err := h.achievementSvc.Unlock(h.ctx, user.ID, a.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(BeFalse())

			Expect(h.reload(user.ID).Points).To(Equal(25))
			Expect(h.unlocks.CountByUserAndAchievement(h.ctx, user.ID, a.ID)).To(BeEquivalentTo(1))
		})

		It("resiste a desbloqueios concorrentes", func() {
			user := h.createUser("bia")
			a := h.createAchievement("Corrida", entities.TotalPointsCriterion{Amount: 1000}, 40)

			const attempts = 8
			var (
				wg    sync.WaitGroup
				mu    sync.Mutex
				fresh int
			)
			for i := 0; i < attempts; i++ {
				wg.Add(1)
				go func() {
					defer GinkgoRecover()
					defer wg.Done()

					ok, err := h.achievementSvc.Unlock(h.ctx, user.ID, a.ID)
					Expect(err).NotTo(HaveOccurred())
					if ok {
						mu.Lock()
						fresh++
						mu.Unlock()
					}
				}()
			}
			wg.Wait()

			Expect(fresh).To(Equal(1))
			Expect(h.unlocks.CountByUserAndAchievement(h.ctx, user.ID, a.ID)).To(BeEquivalentTo(1))
			Expect(h.reload(user.ID).Points).To(Equal(40))
		})

		It("retorna NotFound para conquista inexistente", func() {
			user := h.createUser("caio")

			_, err := h.achievementSvc.Unlock(h.ctx, user.ID, "nao-existe")
			Expect(err).To(MatchError(errors.ErrAchievementNotFound))
		})

		It("retorna NotFound para usuário inexistente sem gravar o desbloqueio", func() {
			a := h.createAchievement("Fantasma", entities.TotalPointsCriterion{Amount: 1000}, 25)
			ghost := "00000000-0000-0000-0000-000000000000"

			fresh, err := h.achievementSvc.Unlock(h.ctx, ghost, a.ID)
			Expect(err).To(MatchError(errors.ErrUserNotFound))
			Expect(fresh).To(BeFalse())
			Expect(h.unlocks.CountByUserAndAchievement(h.ctx, ghost, a.ID)).To(BeZero())
		})
	})

	Describe("CheckAndUnlock", func() {
		It("desbloqueia por pontos totais e soma a recompensa (90 → 105 → 130)", func() {
			user := h.createUser("davi")
			h.createAchievement("Estrela", entities.TotalPointsCriterion{Amount: 100}, 25)

			Expect(h.users.IncrementPoints(h.ctx, user.ID, 90)).To(Succeed())

			names, err := h.achievementSvc.CheckAndUnlock(h.ctx, user.ID, entities.ActionEarnPoints, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(names).To(BeEmpty())

			Expect(h.users.IncrementPoints(h.ctx, user.ID, 15)).To(Succeed())
			Expect(h.reload(user.ID).Points).To(Equal(105))

			names, err = h.achievementSvc.CheckAndUnlock(h.ctx, user.ID, entities.ActionEarnPoints, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(names).To(ConsistOf("Estrela"))
			Expect(h.reload(user.ID).Points).To(Equal(130))

			Expect(h.notificationsOf(user.ID, entities.NotificationAchievement)).To(HaveLen(1))
		})

		It("encadeia níveis de pontos liberados pela própria recompensa", func() {
			user := h.createUser("elis")
			h.createAchievement("Estrela", entities.TotalPointsCriterion{Amount: 100}, 25)
			h.createAchievement("Centelha", entities.TotalPointsCriterion{Amount: 50}, 10)

			Expect(h.users.IncrementPoints(h.ctx, user.ID, 95)).To(Succeed())

			names, err := h.achievementSvc.CheckAndUnlock(h.ctx, user.ID, entities.ActionEarnPoints, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(names).To(ConsistOf("Centelha", "Estrela"))
			Expect(h.reload(user.ID).Points).To(Equal(130))

			names, err = h.achievementSvc.CheckAndUnlock(h.ctx, user.ID, entities.ActionEarnPoints, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(names).To(BeEmpty())
			Expect(h.reload(user.ID).Points).To(Equal(130))
		})

		It("ignora conquistas cujo gatilho é outra ação", func() {
			user := h.createUser("eva")
			h.createAchievement("Desafiante", entities.ChallengesCompletedCriterion{Count: 0}, 5)

			names, err := h.achievementSvc.CheckAndUnlock(h.ctx, user.ID, entities.ActionEarnPoints, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(names).To(BeEmpty())
		})

		It("desbloqueia o primeiro desafio uma única vez", func() {
			user := h.createUser("fabio")
			a := h.createAchievement("Primeiro Passo", entities.ChallengesCompletedCriterion{Count: 1}, 15)
			first := h.createChallenge(50)
			second := h.createChallenge(50)

			_, err := h.challengeSvc.Complete(h.ctx, user.ID, first.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(h.unlocks.Exists(h.ctx, user.ID, a.ID)).To(BeTrue())

			_, err = h.challengeSvc.Complete(h.ctx, user.ID, second.ID)
			Expect(err).NotTo(HaveOccurred())

			Expect(h.unlocks.CountByUserAndAchievement(h.ctx, user.ID, a.ID)).To(BeEquivalentTo(1))
			Expect(h.notificationsOf(user.ID, entities.NotificationAchievement)).To(HaveLen(1))
			Expect(h.queue.Errors()).To(BeEmpty())
		})

		It("desbloqueia critérios sociais de seguidores", func() {
			target := h.createUser("gabi")
			h.createAchievement("Popular", entities.SocialCriterion{Action: entities.SocialFollowers, Count: 2}, 10)

			Expect(h.followSvc.Follow(h.ctx, h.createUser("hugo").ID, target.ID)).To(Succeed())
			Expect(h.notificationsOf(target.ID, entities.NotificationAchievement)).To(BeEmpty())

			Expect(h.followSvc.Follow(h.ctx, h.createUser("iris").ID, target.ID)).To(Succeed())
			Expect(h.notificationsOf(target.ID, entities.NotificationAchievement)).To(HaveLen(1))
			Expect(h.reload(target.ID).Points).To(Equal(10))
		})
	})

	Describe("ListForUser", func() {
		It("marca apenas as conquistas desbloqueadas", func() {
			user := h.createUser("joao")
			a := h.createAchievement("A", entities.TotalPointsCriterion{Amount: 1}, 0)
			h.createAchievement("B", entities.TotalPointsCriterion{Amount: 1000}, 0)

			_, err := h.achievementSvc.Unlock(h.ctx, user.ID, a.ID)
			Expect(err).NotTo(HaveOccurred())

			all, err := h.achievementSvc.ListForUser(h.ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(2))

			unlocked, err := h.achievementSvc.ListUnlocked(h.ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(unlocked).To(HaveLen(1))
			Expect(unlocked[0].Name).To(Equal("A"))
			Expect(unlocked[0].UnlockedAt).NotTo(BeNil())
		})
	})

	Describe("SeedCatalog", func() {
		It("é idempotente", func() {
			created, err := h.achievementSvc.SeedCatalog(h.ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(Equal(len(services.DefaultCatalog())))

			created, err = h.achievementSvc.SeedCatalog(h.ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeZero())
		})
	})
})

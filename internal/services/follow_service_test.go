package services_test

import (
	"context"
	errs "errors"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/domain/errors"
	"github.com/biabrauna/econsciente-api/internal/domain/repositories"
	"github.com/biabrauna/econsciente-api/internal/services"
)

// brokenCounters falha ao ajustar contadores de follow, depois de a aresta
// já ter sido gravada na transação
type brokenCounters struct {
	repositories.UserRepository
}

var errCountersDown = errs.New("counters unavailable")

func (brokenCounters) IncrementFollowCounters(context.Context, string, string, int) error {
	return errCountersDown
}

var _ = Describe("FollowService", func() {
	var h *harness

	BeforeEach(func() {
		h = newHarness()
	})

	expectCountersMatchEdges := func(userID string) {
		GinkgoHelper()

		user := h.reload(userID)
		followers, err := h.follows.CountFollowers(h.ctx, userID)
		Expect(err).NotTo(HaveOccurred())
		following, err := h.follows.CountFollowing(h.ctx, userID)
		Expect(err).NotTo(HaveOccurred())

		Expect(user.Followers).To(BeEquivalentTo(followers))
		Expect(user.Following).To(BeEquivalentTo(following))
	}

	Context("quando o ajuste de contadores falha", func() {
		var broken *services.FollowService

		BeforeEach(func() {
			broken = services.NewFollowService(
				brokenCounters{h.users}, h.follows, h.notificationSvc, h.progress, h.uow, h.log,
			)
		})

		It("Follow não deixa aresta nem contadores alterados", func() {
			a, b := h.createUser("otavio"), h.createUser("paula")

			Expect(broken.Follow(h.ctx, a.ID, b.ID)).To(MatchError(errCountersDown))

			Expect(h.followSvc.IsFollowing(h.ctx, a.ID, b.ID)).To(BeFalse())
			Expect(h.reload(a.ID).Following).To(BeZero())
			Expect(h.reload(b.ID).Followers).To(BeZero())
			Expect(h.notificationsOf(b.ID, entities.NotificationFollower)).To(BeEmpty())
		})

		It("Unfollow mantém a aresta e os contadores", func() {
			a, b := h.createUser("quim"), h.createUser("rita")
			Expect(h.followSvc.Follow(h.ctx, a.ID, b.ID)).To(Succeed())

			Expect(broken.Unfollow(h.ctx, a.ID, b.ID)).To(MatchError(errCountersDown))

			Expect(h.followSvc.IsFollowing(h.ctx, a.ID, b.ID)).To(BeTrue())
			Expect(h.reload(a.ID).Following).To(Equal(1))
			Expect(h.reload(b.ID).Followers).To(Equal(1))
			expectCountersMatchEdges(a.ID)
			expectCountersMatchEdges(b.ID)
		})
	})

	It("atualiza os contadores dos dois lados", func() {
		a, b := h.createUser("marcos"), h.createUser("nina")

		Expect(h.followSvc.Follow(h.ctx, a.ID, b.ID)).To(Succeed())
		Expect(h.reload(a.ID).Following).To(Equal(1))
		Expect(h.reload(b.ID).Followers).To(Equal(1))
		Expect(h.followSvc.IsFollowing(h.ctx, a.ID, b.ID)).To(BeTrue())

		Expect(h.followSvc.Unfollow(h.ctx, a.ID, b.ID)).To(Succeed())
		Expect(h.reload(a.ID).Following).To(BeZero())
		Expect(h.reload(b.ID).Followers).To(BeZero())

		expectCountersMatchEdges(a.ID)
		expectCountersMatchEdges(b.ID)
	})

	It("notifica o usuário seguido", func() {
		a, b := h.createUser("otto"), h.createUser("paula")

		Expect(h.followSvc.Follow(h.ctx, a.ID, b.ID)).To(Succeed())

		notes := h.notificationsOf(b.ID, entities.NotificationFollower)
		Expect(notes).To(HaveLen(1))
		Expect(notes[0].Message).To(ContainSubstring("otto"))
		Expect(h.publisher.Published()).NotTo(BeEmpty())
	})

	It("rejeita seguir a si mesmo", func() {
		a := h.createUser("quico")

		err := h.followSvc.Follow(h.ctx, a.ID, a.ID)
		Expect(err).To(MatchError(errors.ErrSelfFollow))
		Expect(errors.KindOf(err)).To(Equal(errors.KindInvalidState))
	})

	It("retorna NotFound para alvo inexistente", func() {
		a := h.createUser("rita")

		err := h.followSvc.Follow(h.ctx, a.ID, "fantasma")
		Expect(errors.KindOf(err)).To(Equal(errors.KindNotFound))
	})

	It("rejeita follow duplicado sem alterar contadores", func() {
		a, b := h.createUser("sara"), h.createUser("tiago")

		Expect(h.followSvc.Follow(h.ctx, a.ID, b.ID)).To(Succeed())
		Expect(h.followSvc.Follow(h.ctx, a.ID, b.ID)).To(MatchError(errors.ErrAlreadyFollowing))
		Expect(h.reload(b.ID).Followers).To(Equal(1))
	})

	It("rejeita unfollow sem aresta", func() {
		a, b := h.createUser("ulisses"), h.createUser("vera")

		Expect(h.followSvc.Unfollow(h.ctx, a.ID, b.ID)).To(MatchError(errors.ErrNotFollowing))
	})

	It("mantém o invariante sob follows concorrentes", func() {
		target := h.createUser("wagner")
		followers := make([]*entities.User, 6)
		for i := range followers {
			followers[i] = h.createUser("fan" + string(rune('a'+i)))
		}

		var wg sync.WaitGroup
		for _, f := range followers {
			for attempt := 0; attempt < 3; attempt++ {
				wg.Add(1)
				go func(id string) {
					defer GinkgoRecover()
					defer wg.Done()

					err := h.followSvc.Follow(h.ctx, id, target.ID)
					if err != nil {
						Expect(err).To(MatchError(errors.ErrAlreadyFollowing))
					}
				}(f.ID)
			}
		}
		wg.Wait()

		Expect(h.reload(target.ID).Followers).To(Equal(len(followers)))
		expectCountersMatchEdges(target.ID)
		for _, f := range followers {
			expectCountersMatchEdges(f.ID)
		}
	})

	It("lista seguidores e seguidos", func() {
		a, b, c := h.createUser("xavier"), h.createUser("yara"), h.createUser("zeca")

		Expect(h.followSvc.Follow(h.ctx, a.ID, c.ID)).To(Succeed())
		Expect(h.followSvc.Follow(h.ctx, b.ID, c.ID)).To(Succeed())

		followers, err := h.followSvc.ListFollowers(h.ctx, c.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(followers).To(HaveLen(2))

		following, err := h.followSvc.ListFollowing(h.ctx, a.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(following).To(HaveLen(1))
		Expect(following[0].ID).To(Equal(c.ID))

		_, err = h.followSvc.ListFollowers(h.ctx, "fantasma")
		Expect(err).To(MatchError(errors.ErrUserNotFound))
	})

	It("reconcilia contadores divergentes", func() {
		a, b := h.createUser("alice"), h.createUser("bruno")
		Expect(h.followSvc.Follow(h.ctx, a.ID, b.ID)).To(Succeed())
		Expect(h.users.SetFollowCounters(h.ctx, b.ID, 7, 3)).To(Succeed())

		fixed, err := h.followSvc.ReconcileCounters(h.ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(fixed).To(Equal(1))
		expectCountersMatchEdges(b.ID)

		fixed, err = h.followSvc.ReconcileCounters(h.ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(fixed).To(BeZero())
	})
})

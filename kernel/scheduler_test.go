package kernel

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("Scheduler", func() {
	var (
		mockCtrl  *gomock.Controller
		scheduler *Scheduler
		errors    []string
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		errors = nil
		scheduler = MakeSchedulerBuilder().
			WithMaxTasks(4).
			WithErrorHandler(func(_ string, _ int, msg string) {
				errors = append(errors, msg)
			}).
			Build()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should register and unregister tasks", func() {
		runner := NewMockRunner(mockCtrl)

		Expect(scheduler.RegisterTask(runner)).To(BeTrue())
		Expect(scheduler.Tasks()).To(HaveLen(1))

		scheduler.UnregisterTask(runner)
		Expect(scheduler.Tasks()).To(BeEmpty())
	})

	It("should treat duplicate registration as success", func() {
		runner := NewMockRunner(mockCtrl)

		Expect(scheduler.RegisterTask(runner)).To(BeTrue())
		Expect(scheduler.RegisterTask(runner)).To(BeTrue())
		Expect(scheduler.Tasks()).To(HaveLen(1))
	})

	It("should reject registration when the table is full", func() {
		for i := 0; i < scheduler.TaskMaxNum(); i++ {
			Expect(scheduler.RegisterTask(NewMockRunner(mockCtrl))).
				To(BeTrue())
		}

		Expect(scheduler.RegisterTask(NewMockRunner(mockCtrl))).To(BeFalse())
	})

	It("should ignore unregistering an unknown task", func() {
		scheduler.UnregisterTask(NewMockRunner(mockCtrl))

		Expect(scheduler.Tasks()).To(BeEmpty())
	})

	It("should run every task once per revolution", func() {
		runners := make([]*MockRunner, 3)
		for i := range runners {
			runners[i] = NewMockRunner(mockCtrl)
			runners[i].EXPECT().Run().Times(1)
			scheduler.RegisterTask(runners[i])
		}

		for i := 0; i < len(runners); i++ {
			scheduler.ProcessTasks()
		}
	})

	It("should bound unfairness to one run", func() {
		runners := make([]*MockRunner, 3)
		for i := range runners {
			runners[i] = NewMockRunner(mockCtrl)
			scheduler.RegisterTask(runners[i])
		}

		// 7 calls over 3 tasks: every task runs at least twice, at most
		// three times.
		runners[0].EXPECT().Run().Times(3)
		runners[1].EXPECT().Run().Times(2)
		runners[2].EXPECT().Run().Times(2)

		for i := 0; i < 7; i++ {
			scheduler.ProcessTasks()
		}
	})

	It("should do nothing when no task is registered", func() {
		scheduler.ProcessTasks()
	})

	It("should skip a task after unregistration", func() {
		stays := NewMockRunner(mockCtrl)
		leaves := NewMockRunner(mockCtrl)
		scheduler.RegisterTask(stays)
		scheduler.RegisterTask(leaves)

		scheduler.UnregisterTask(leaves)

		stays.EXPECT().Run().Times(2)
		scheduler.ProcessTasks()
		scheduler.ProcessTasks()
	})

	It("should invoke hooks around each dispatch", func() {
		runner := NewMockRunner(mockCtrl)
		hook := NewMockHook(mockCtrl)
		scheduler.RegisterTask(runner)
		scheduler.AcceptHook(hook)

		before := hook.EXPECT().Func(HookCtx{
			Domain: scheduler,
			Pos:    HookPosBeforeTaskRun,
			Item:   runner,
		})
		run := runner.EXPECT().Run().After(before)
		hook.EXPECT().Func(HookCtx{
			Domain: scheduler,
			Pos:    HookPosAfterTaskRun,
			Item:   runner,
		}).After(run)

		scheduler.ProcessTasks()
	})

	It("should process timers before the task slice in ProcessAll", func() {
		var order []string

		timer := scheduler.RegisterTimer(1, func() {
			order = append(order, "timer")
		})
		timer.Start()

		task := NewTask(scheduler, RunnerFunc(func() {
			order = append(order, "task")
		}))
		defer task.Close()

		scheduler.Clock().Increment()
		scheduler.ProcessAll()

		Expect(order).To(Equal([]string{"timer", "task"}))
	})

	It("should expose its identity and clock", func() {
		Expect(scheduler.ID()).NotTo(BeEmpty())
		Expect(scheduler.Clock()).NotTo(BeNil())
		Expect(scheduler.TaskMaxNum()).To(Equal(4))
		Expect(errors).To(BeEmpty())
	})

	It("should panic on non-positive capacities", func() {
		Expect(func() {
			MakeSchedulerBuilder().WithMaxTasks(0).Build()
		}).To(Panic())
	})
})

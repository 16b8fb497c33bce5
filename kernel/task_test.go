package kernel

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("Task", func() {
	var (
		mockCtrl  *gomock.Controller
		scheduler *Scheduler
		errors    []string
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		errors = nil
		scheduler = MakeSchedulerBuilder().
			WithMaxTasks(2).
			WithErrorHandler(func(_ string, _ int, msg string) {
				errors = append(errors, msg)
			}).
			Build()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should register on construction and unregister on Close", func() {
		runner := NewMockRunner(mockCtrl)

		task := NewTask(scheduler, runner)
		Expect(task.Runner()).To(Equal(runner))

		runner.EXPECT().Run()
		scheduler.ProcessTasks()

		task.Close()
		scheduler.ProcessTasks()
	})

	It("should tolerate closing twice", func() {
		task := NewTask(scheduler, NewMockRunner(mockCtrl))

		task.Close()
		task.Close()
	})

	It("should escalate a full table to the error handler", func() {
		NewTask(scheduler, NewMockRunner(mockCtrl))
		NewTask(scheduler, NewMockRunner(mockCtrl))
		Expect(errors).To(BeEmpty())

		overflow := NewMockRunner(mockCtrl)
		NewTask(scheduler, overflow)

		Expect(errors).To(HaveLen(1))

		// The overflow task is never dispatched.
		scheduler.Tasks()[0].(*MockRunner).EXPECT().Run().AnyTimes()
		scheduler.Tasks()[1].(*MockRunner).EXPECT().Run().AnyTimes()
		for i := 0; i < 10; i++ {
			scheduler.ProcessAll()
		}
	})
})

var _ = Describe("ManualTask", func() {
	var (
		mockCtrl  *gomock.Controller
		scheduler *Scheduler
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		scheduler = MakeSchedulerBuilder().WithMaxTasks(2).Build()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should stay inert until started", func() {
		runner := NewMockRunner(mockCtrl)
		task := NewManualTask(scheduler, runner)

		scheduler.ProcessTasks()

		Expect(task.Start()).To(BeTrue())
		runner.EXPECT().Run()
		scheduler.ProcessTasks()

		task.Stop()
		scheduler.ProcessTasks()
	})

	It("should report idempotent Start", func() {
		task := NewManualTask(scheduler, NewMockRunner(mockCtrl))

		Expect(task.Start()).To(BeTrue())
		Expect(task.Start()).To(BeTrue())
		Expect(scheduler.Tasks()).To(HaveLen(1))
	})

	It("should fail to start when the table is full", func() {
		NewTask(scheduler, NewMockRunner(mockCtrl))
		NewTask(scheduler, NewMockRunner(mockCtrl))

		task := NewManualTask(scheduler, NewMockRunner(mockCtrl))

		Expect(task.Start()).To(BeFalse())
	})

	It("should tolerate stopping when not started", func() {
		task := NewManualTask(scheduler, NewMockRunner(mockCtrl))

		task.Stop()
	})
})

var _ = Describe("GenericTask", func() {
	var (
		mockCtrl  *gomock.Controller
		scheduler *Scheduler
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		scheduler = MakeSchedulerBuilder().WithMaxTasks(2).Build()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should forward scheduling turns to the processor", func() {
		processor := NewMockProcessor(mockCtrl)
		task := NewGenericTask(scheduler, processor, true)

		processor.EXPECT().Process().Times(2)
		scheduler.ProcessTasks()
		scheduler.ProcessTasks()

		task.Stop()
		scheduler.ProcessTasks()
	})

	It("should respect autoStart=false", func() {
		processor := NewMockProcessor(mockCtrl)
		task := NewGenericTask(scheduler, processor, false)

		scheduler.ProcessTasks()

		Expect(task.Start()).To(BeTrue())
		processor.EXPECT().Process()
		scheduler.ProcessTasks()
	})
})

var _ = Describe("RunnerFunc", func() {
	It("should give each adapter a distinct identity", func() {
		scheduler := MakeSchedulerBuilder().WithMaxTasks(2).Build()

		count := 0
		a := RunnerFunc(func() { count++ })
		b := RunnerFunc(func() { count += 10 })

		Expect(scheduler.RegisterTask(a)).To(BeTrue())
		Expect(scheduler.RegisterTask(b)).To(BeTrue())

		scheduler.ProcessTasks()
		scheduler.ProcessTasks()

		Expect(count).To(Equal(11))

		scheduler.UnregisterTask(a)
		scheduler.ProcessTasks()

		Expect(count).To(Equal(21))
	})
})

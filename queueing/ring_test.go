package queueing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Ring", func() {
	var ring *Ring[int]

	BeforeEach(func() {
		ring = NewRing[int](3)
	})

	It("should push and pop in order", func() {
		Expect(ring.Capacity()).To(Equal(3))
		Expect(ring.Empty()).To(BeTrue())

		Expect(ring.Push(1)).To(BeTrue())
		Expect(ring.Push(2)).To(BeTrue())
		Expect(ring.Size()).To(Equal(2))

		e, ok := ring.Front()
		Expect(ok).To(BeTrue())
		Expect(e).To(Equal(1))

		e, ok = ring.Pop()
		Expect(ok).To(BeTrue())
		Expect(e).To(Equal(1))

		e, ok = ring.Pop()
		Expect(ok).To(BeTrue())
		Expect(e).To(Equal(2))

		Expect(ring.Empty()).To(BeTrue())
	})

	It("should reject pushes beyond capacity and keep contents", func() {
		Expect(ring.Push(1)).To(BeTrue())
		Expect(ring.Push(2)).To(BeTrue())
		Expect(ring.Push(3)).To(BeTrue())
		Expect(ring.Full()).To(BeTrue())

		Expect(ring.Push(4)).To(BeFalse())
		Expect(ring.Size()).To(Equal(3))

		e, _ := ring.Pop()
		Expect(e).To(Equal(1))
	})

	It("should fail to pop from an empty queue without changing state", func() {
		_, ok := ring.Pop()
		Expect(ok).To(BeFalse())
		Expect(ring.Size()).To(Equal(0))

		_, ok = ring.Front()
		Expect(ok).To(BeFalse())
	})

	It("should evict the oldest element on PushOver when full", func() {
		ring.Push(1)
		ring.Push(2)
		ring.Push(3)

		ring.PushOver(4)

		Expect(ring.Size()).To(Equal(3))

		e, _ := ring.Pop()
		Expect(e).To(Equal(2))
		e, _ = ring.Pop()
		Expect(e).To(Equal(3))
		e, _ = ring.Pop()
		Expect(e).To(Equal(4))
	})

	It("should wrap around the backing buffer", func() {
		ring.Push(1)
		ring.Push(2)
		ring.Pop()
		ring.Push(3)
		ring.Push(4)

		e, _ := ring.Pop()
		Expect(e).To(Equal(2))
		e, _ = ring.Pop()
		Expect(e).To(Equal(3))
		e, _ = ring.Pop()
		Expect(e).To(Equal(4))
	})

	It("should clear", func() {
		ring.Push(1)
		ring.Push(2)

		ring.Clear()

		Expect(ring.Empty()).To(BeTrue())
		Expect(ring.Push(5)).To(BeTrue())

		e, _ := ring.Pop()
		Expect(e).To(Equal(5))
	})

	It("should panic on a non-positive capacity", func() {
		Expect(func() {
			NewRing[int](0)
		}).To(Panic())
	})
})

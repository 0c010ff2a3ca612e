package cache_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/v810/timing/cache"
)

var _ = Describe("Cache", func() {
	var c *cache.Cache

	BeforeEach(func() {
		var err error
		c, err = cache.New(cache.DefaultInstructionCacheConfig())
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Config", func() {
		It("should accept the default geometry", func() {
			Expect(cache.DefaultInstructionCacheConfig().Validate()).To(Succeed())
		})

		It("should reject a block size that is not a power of two", func() {
			config := cache.DefaultInstructionCacheConfig()
			config.BlockSize = 12
			Expect(config.Validate()).To(HaveOccurred())
		})

		It("should reject a size that does not divide into sets", func() {
			config := cache.DefaultInstructionCacheConfig()
			config.Size = 1004
			Expect(config.Validate()).To(HaveOccurred())
		})

		It("should accept a set count that is not a power of two", func() {
			config := cache.DefaultInstructionCacheConfig()
			config.Size = 1000
			Expect(config.Validate()).To(Succeed())
		})

		It("should refuse to build a cache from an invalid geometry", func() {
			_, err := cache.New(cache.Config{Size: 1024, BlockSize: 8})
			Expect(err).To(HaveOccurred())

			_, err = cache.New(cache.Config{})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Access", func() {
		It("should miss on cold cache", func() {
			result := c.Access(0x07000000)

			Expect(result.Hit).To(BeFalse())
			Expect(result.Latency).To(Equal(uint32(3)))
			Expect(c.Stats().Misses).To(Equal(uint64(1)))
		})

		It("should hit on a cached line", func() {
			c.Access(0x07000000)
			result := c.Access(0x07000000)

			Expect(result.Hit).To(BeTrue())
			Expect(result.Latency).To(Equal(uint32(0)))
			Expect(c.Stats().Hits).To(Equal(uint64(1)))
			Expect(c.Stats().Accesses).To(Equal(uint64(2)))
		})

		It("should hit on different halfwords in the same line", func() {
			c.Access(0x07000000)

			Expect(c.Access(0x07000006).Hit).To(BeTrue())
			Expect(c.Access(0x07000008).Hit).To(BeFalse())
		})

		It("should evict a conflicting line in a direct-mapped cache", func() {
			c.Access(0x07000000)
			result := c.Access(0x07000400)

			Expect(result.Hit).To(BeFalse())
			Expect(result.Evicted).To(BeTrue())
			Expect(result.EvictedAddr).To(Equal(uint32(0x07000000)))
			Expect(c.Contains(0x07000000)).To(BeFalse())
			Expect(c.Stats().Evictions).To(Equal(uint64(1)))
		})

		It("should keep both lines in a two-way cache", func() {
			config := cache.DefaultInstructionCacheConfig()
			config.Associativity = 2
			var err error
			c, err = cache.New(config)
			Expect(err).NotTo(HaveOccurred())

			c.Access(0x07000000)
			c.Access(0x07000200)

			Expect(c.Access(0x07000000).Hit).To(BeTrue())
			Expect(c.Access(0x07000200).Hit).To(BeTrue())
		})

		It("should cache the top of the address space", func() {
			c.Access(0xFFFFFFF0)
			Expect(c.Contains(0xFFFFFFF6)).To(BeTrue())
		})
	})

	Describe("Invalidate", func() {
		It("should drop a cached line", func() {
			c.Access(0x1000)
			c.Invalidate(0x1004)

			Expect(c.Contains(0x1000)).To(BeFalse())
			Expect(c.Stats().Invalidations).To(Equal(uint64(1)))
		})

		It("should ignore lines that are not cached", func() {
			c.Invalidate(0x2000)
			Expect(c.Stats().Invalidations).To(Equal(uint64(0)))
		})
	})

	Describe("Reset", func() {
		It("should clear lines and statistics", func() {
			c.Access(0x1000)
			c.Reset()

			Expect(c.Contains(0x1000)).To(BeFalse())
			Expect(c.Stats()).To(Equal(cache.Statistics{}))
		})
	})
})

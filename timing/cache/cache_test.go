package cache_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rv32core/loader"
	"github.com/sarchlab/rv32core/timing/cache"
)

var _ = Describe("Cache", func() {
	var (
		c       *cache.Cache
		backing *cache.ProgramBacking
	)

	BeforeEach(func() {
		words := make([]uint32, 128)
		for i := range words {
			words[i] = 0xA0000000 | uint32(i)
		}
		backing = cache.NewProgramBacking(loader.NewProgram(0, words))

		// 256B, 2-way, 32B lines = 4 sets; addresses 0x80 apart share a set.
		config := cache.Config{
			Size:          256,
			Associativity: 2,
			BlockSize:     32,
			HitLatency:    1,
			MissLatency:   10,
		}
		c = cache.New(config, backing)
	})

	Describe("Read operations", func() {
		It("should miss on cold cache", func() {
			word, result := c.ReadWord(0x10)
			Expect(result.Hit).To(BeFalse())
			Expect(result.Latency).To(Equal(uint64(10)))
			Expect(word).To(Equal(uint32(0xA0000004)))

			stats := c.Stats()
			Expect(stats.Reads).To(Equal(uint64(1)))
			Expect(stats.Misses).To(Equal(uint64(1)))
			Expect(stats.Hits).To(Equal(uint64(0)))
		})

		It("should hit on cached data", func() {
			c.ReadWord(0x10)

			word, result := c.ReadWord(0x10)
			Expect(result.Hit).To(BeTrue())
			Expect(result.Latency).To(Equal(uint64(1)))
			Expect(word).To(Equal(uint32(0xA0000004)))
			Expect(c.Stats().HitRate()).To(Equal(0.5))
		})

		It("should hit on different addresses in same cache line", func() {
			c.ReadWord(0x00)

			for addr := uint64(4); addr < 32; addr += 4 {
				word, result := c.ReadWord(addr)
				Expect(result.Hit).To(BeTrue())
				Expect(word).To(Equal(0xA0000000 | uint32(addr/4)))
			}
			Expect(backing.Reads()).To(Equal(uint64(1)))
		})

		It("should read zero past the end of the program", func() {
			word, result := c.ReadWord(0x400)
			Expect(result.Hit).To(BeFalse())
			Expect(word).To(Equal(uint32(0)))
		})
	})

	Describe("Eviction", func() {
		It("should evict the least recently used block", func() {
			c.ReadWord(0x000)
			c.ReadWord(0x080)
			c.ReadWord(0x000)

			_, result := c.ReadWord(0x100)
			Expect(result.Hit).To(BeFalse())
			Expect(result.Evicted).To(BeTrue())
			Expect(result.EvictedAddr).To(Equal(uint64(0x080)))

			Expect(c.Contains(0x000)).To(BeTrue())
			Expect(c.Contains(0x080)).To(BeFalse())
			Expect(c.Stats().Evictions).To(Equal(uint64(1)))
		})

		It("should not evict across sets", func() {
			c.ReadWord(0x000)
			c.ReadWord(0x020)
			c.ReadWord(0x040)
			c.ReadWord(0x060)
			Expect(c.Stats().Evictions).To(Equal(uint64(0)))
		})
	})

	Describe("Invalidate and Reset", func() {
		It("should refetch an invalidated line", func() {
			c.ReadWord(0x40)
			c.Invalidate(0x44)
			Expect(c.Contains(0x40)).To(BeFalse())

			_, result := c.ReadWord(0x40)
			Expect(result.Hit).To(BeFalse())
			Expect(backing.Reads()).To(Equal(uint64(2)))
		})

		It("should drop every line and statistic on reset", func() {
			c.ReadWord(0x00)
			c.ReadWord(0x80)
			c.Reset()

			Expect(c.Stats()).To(Equal(cache.Statistics{}))
			Expect(c.Contains(0x00)).To(BeFalse())
			Expect(c.Contains(0x80)).To(BeFalse())
		})

		It("should keep lines when only statistics are reset", func() {
			c.ReadWord(0x00)
			c.ResetStats()
			Expect(c.Stats().Reads).To(Equal(uint64(0)))
			Expect(c.Contains(0x00)).To(BeTrue())
		})
	})

	It("should read zeros without a backing store", func() {
		bare := cache.New(cache.DefaultICacheConfig(), nil)
		word, result := bare.ReadWord(0x100)
		Expect(result.Hit).To(BeFalse())
		Expect(word).To(Equal(uint32(0)))
	})
})

var _ = Describe("Config", func() {
	It("should provide a valid default instruction cache", func() {
		config := cache.DefaultICacheConfig()
		Expect(config.Validate()).To(Succeed())
		Expect(config.NumSets()).To(Equal(64))
	})

	DescribeTable("rejecting bad geometry",
		func(mutate func(*cache.Config), msg string) {
			config := cache.DefaultICacheConfig()
			mutate(&config)
			err := config.Validate()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring(msg))
		},
		Entry("zero size", func(c *cache.Config) { c.Size = 0 }, "size"),
		Entry("zero ways", func(c *cache.Config) { c.Associativity = 0 }, "associativity"),
		Entry("odd block", func(c *cache.Config) { c.BlockSize = 24 }, "block_size"),
		Entry("ragged size", func(c *cache.Config) { c.Size = 4000 }, "multiple"),
		Entry("zero hit latency", func(c *cache.Config) { c.HitLatency = 0 }, "hit_latency"),
		Entry("fast miss", func(c *cache.Config) { c.MissLatency = 0 }, "miss_latency"),
	)
})

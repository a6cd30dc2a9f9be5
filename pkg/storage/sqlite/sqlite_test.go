package sqlite_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/crucible/pkg/element"
	"github.com/papercomputeco/crucible/pkg/storage"
	"github.com/papercomputeco/crucible/pkg/storage/sqlite"
)

var _ = Describe("Driver", func() {
	var (
		driver *sqlite.Driver
		ctx    context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		driver, err = sqlite.NewDriver(":memory:")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if driver != nil {
			driver.Close()
		}
	})

	Describe("NewDriver", func() {
		It("creates a driver with a file database", func() {
			tmpDir := GinkgoT().TempDir()
			dbPath := filepath.Join(tmpDir, "test.db")

			s, err := sqlite.NewDriver(dbPath)
			Expect(err).NotTo(HaveOccurred())
			defer s.Close()

			// Verify file was created
			_, err = os.Stat(dbPath)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("Put and Get", func() {
		It("stores and retrieves a combination", func() {
			combo := &element.Combination{Element1: "Water", Element2: "Earth", Result: "Mud💩"}

			Expect(driver.Put(ctx, combo)).To(Succeed())

			retrieved, err := driver.Get(ctx, "Water", "Earth")
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved.Element1).To(Equal("Water"))
			Expect(retrieved.Element2).To(Equal("Earth"))
			Expect(retrieved.Result).To(Equal("Mud💩"))
		})

		It("retrieves a combination by the reversed order", func() {
			combo := &element.Combination{Element1: "Water", Element2: "Earth", Result: "Mud💩"}
			Expect(driver.Put(ctx, combo)).To(Succeed())

			retrieved, err := driver.Get(ctx, "Earth", "Water")
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved.Result).To(Equal("Mud💩"))
		})

		It("returns ErrNotFound for an unresolved pair", func() {
			_, err := driver.Get(ctx, "Fire", "Ice")
			Expect(err).To(HaveOccurred())

			var notFoundErr storage.ErrNotFound
			Expect(err).To(BeAssignableToTypeOf(notFoundErr))
		})

		It("overwrites an existing record at the same key", func() {
			Expect(driver.Put(ctx, &element.Combination{Element1: "A", Element2: "B", Result: "First�old"})).To(Succeed())
			Expect(driver.Put(ctx, &element.Combination{Element1: "A", Element2: "B", Result: "Second🆕"})).To(Succeed())

			retrieved, err := driver.Get(ctx, "A", "B")
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved.Result).To(Equal("Second🆕"))

			count, err := driver.Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(1))
		})

		It("rejects nil combinations", func() {
			Expect(driver.Put(ctx, nil)).To(MatchError(ContainSubstring("nil combination")))
		})
	})

	Describe("ResultPrefix", func() {
		BeforeEach(func() {
			Expect(driver.Put(ctx, &element.Combination{Element1: "Mud", Element2: "Fire", Result: "Brick🧱"})).To(Succeed())
			Expect(driver.Put(ctx, &element.Combination{Element1: "Stone", Element2: "Fire", Result: "Lava🌋"})).To(Succeed())
			Expect(driver.Put(ctx, &element.Combination{Element1: "Brick", Element2: "Brick", Result: "Brick Wall🧱"})).To(Succeed())
		})

		It("returns combinations whose result starts with the prefix", func() {
			matches, err := driver.ResultPrefix(ctx, "Brick")
			Expect(err).NotTo(HaveOccurred())
			Expect(matches).To(HaveLen(2))
			Expect(matches[0].Result).To(Equal("Brick🧱"))
			Expect(matches[1].Result).To(Equal("Brick Wall🧱"))
		})

		It("treats LIKE wildcards in the prefix literally", func() {
			Expect(driver.Put(ctx, &element.Combination{Element1: "X", Element2: "Y", Result: "100%🎯"})).To(Succeed())

			matches, err := driver.ResultPrefix(ctx, "100%")
			Expect(err).NotTo(HaveOccurred())
			Expect(matches).To(HaveLen(1))
			Expect(matches[0].Result).To(Equal("100%🎯"))

			matches, err = driver.ResultPrefix(ctx, "1__%")
			Expect(err).NotTo(HaveOccurred())
			Expect(matches).To(BeEmpty())
		})

		It("returns no matches for an unknown prefix", func() {
			matches, err := driver.ResultPrefix(ctx, "Steam")
			Expect(err).NotTo(HaveOccurred())
			Expect(matches).To(BeEmpty())
		})
	})

	Describe("List and Count", func() {
		It("returns empty for an empty store", func() {
			combos, err := driver.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(combos).To(BeEmpty())
		})

		It("returns all combinations oldest first", func() {
			Expect(driver.Put(ctx, &element.Combination{Element1: "Water", Element2: "Earth", Result: "Mud💩"})).To(Succeed())
			Expect(driver.Put(ctx, &element.Combination{Element1: "Mud", Element2: "Fire", Result: "Brick🧱"})).To(Succeed())

			combos, err := driver.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(combos).To(HaveLen(2))
			Expect(combos[0].Result).To(Equal("Mud💩"))
			Expect(combos[1].Result).To(Equal("Brick🧱"))

			count, err := driver.Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(2))
		})
	})

	Describe("Persistence", func() {
		It("survives reopening the database file", func() {
			tmpDir := GinkgoT().TempDir()
			dbPath := filepath.Join(tmpDir, "combos.db")

			first, err := sqlite.NewDriver(dbPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(first.Put(ctx, &element.Combination{Element1: "Water", Element2: "Earth", Result: "Mud💩"})).To(Succeed())
			Expect(first.Close()).To(Succeed())

			second, err := sqlite.NewDriver(dbPath)
			Expect(err).NotTo(HaveOccurred())
			defer second.Close()

			retrieved, err := second.Get(ctx, "Water", "Earth")
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved.Result).To(Equal("Mud💩"))
		})
	})
})

package postgres_test

import (
	"context"
	"database/sql"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/papercomputeco/crucible/pkg/element"
	"github.com/papercomputeco/crucible/pkg/storage"
	"github.com/papercomputeco/crucible/pkg/storage/postgres"
)

// connStr returns the PostgreSQL connection string from environment or skips the test.
func connStr() string {
	dsn := os.Getenv("CRUCIBLE_TEST_POSTGRES_DSN")
	if dsn == "" {
		Skip("CRUCIBLE_TEST_POSTGRES_DSN not set, skipping PostgreSQL tests")
	}
	return dsn
}

var _ = Describe("Driver", func() {
	var (
		driver *postgres.Driver
		ctx    context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		dsn := connStr()

		var err error
		driver, err = postgres.NewDriver(ctx, dsn)
		Expect(err).NotTo(HaveOccurred())

		// Clean all combinations before each test for isolation.
		db, err := sql.Open("pgx", dsn)
		Expect(err).NotTo(HaveOccurred())
		defer db.Close()
		_, err = db.ExecContext(ctx, "TRUNCATE combinations")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if driver != nil {
			driver.Close()
		}
	})

	Describe("Put and Get", func() {
		It("stores and retrieves a combination in either order", func() {
			combo := &element.Combination{Element1: "Water", Element2: "Earth", Result: "Mud💩"}
			Expect(driver.Put(ctx, combo)).To(Succeed())

			retrieved, err := driver.Get(ctx, "Water", "Earth")
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved.Result).To(Equal("Mud💩"))

			retrieved, err = driver.Get(ctx, "Earth", "Water")
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
	})

	Describe("ResultPrefix", func() {
		It("returns combinations whose result starts with the prefix, oldest first", func() {
			Expect(driver.Put(ctx, &element.Combination{Element1: "Mud", Element2: "Fire", Result: "Brick🧱"})).To(Succeed())
			Expect(driver.Put(ctx, &element.Combination{Element1: "Stone", Element2: "Fire", Result: "Lava🌋"})).To(Succeed())
			Expect(driver.Put(ctx, &element.Combination{Element1: "Brick", Element2: "Brick", Result: "Brick Wall🧱"})).To(Succeed())

			matches, err := driver.ResultPrefix(ctx, "Brick")
			Expect(err).NotTo(HaveOccurred())
			Expect(matches).To(HaveLen(2))
			Expect(matches[0].Result).To(Equal("Brick🧱"))
			Expect(matches[1].Result).To(Equal("Brick Wall🧱"))
		})
	})
})

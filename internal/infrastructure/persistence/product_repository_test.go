package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/skubridge/backend/internal/domain/catalog"
	"github.com/skubridge/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockProductRepository creates a GormProductRepository with a mocked SQL connection
func newMockProductRepository(t *testing.T) (*GormProductRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormProductRepository(gormDB), mock, mockDB
}

func productRows(id uuid.UUID, sku, name, baseCode string, packageType catalog.PackageType, unitsPerDisplay int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "version", "sku", "name", "base_code", "package_type", "units_per_display", "unit_price", "active"}).
		AddRow(id, 1, sku, name, baseCode, packageType, unitsPerDisplay, decimal.Zero, true)
}

func TestNewGormProductRepository(t *testing.T) {
	t.Run("creates repository with valid DB", func(t *testing.T) {
		repo, _, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		assert.NotNil(t, repo)
		assert.NotNil(t, repo.db)
	})
}

func TestGormProductRepository_FindByID(t *testing.T) {
	t.Run("finds existing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		rows := productRows(productID, "BAKC_U04010", "Galletas Surtidas", "BAKC", catalog.PackageTypeUnit, 1)

		mock.ExpectQuery(`SELECT \* FROM "canonical_products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnRows(rows)

		product, err := repo.FindByID(context.Background(), productID)

		assert.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, productID, product.ID)
		assert.Equal(t, "BAKC_U04010", product.SKU)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for non-existent product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "canonical_products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		product, err := repo.FindByID(context.Background(), productID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Nil(t, product)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_FindBySKU(t *testing.T) {
	t.Run("finds product by SKU", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		rows := productRows(uuid.New(), "GRNL_U01", "Granola Master 500g", "GRNL", catalog.PackageTypeUnit, 1)

		mock.ExpectQuery(`SELECT \* FROM "canonical_products" WHERE sku = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("GRNL_U01", 1).
			WillReturnRows(rows)

		product, err := repo.FindBySKU(context.Background(), "GRNL_U01")

		assert.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, "GRNL_U01", product.SKU)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("uppercases the SKU before querying", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		rows := productRows(uuid.New(), "GRNL_U01", "Granola Master 500g", "GRNL", catalog.PackageTypeUnit, 1)

		mock.ExpectQuery(`SELECT \* FROM "canonical_products" WHERE sku = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("GRNL_U01", 1).
			WillReturnRows(rows)

		_, err := repo.FindBySKU(context.Background(), "grnl_u01")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_FindByBaseCode(t *testing.T) {
	t.Run("finds the active product for a base code", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		rows := productRows(uuid.New(), "BAKC_CAJA16", "Galletas Display 16", "BAKC", catalog.PackageTypeDisplay, 16)

		mock.ExpectQuery(`SELECT \* FROM "canonical_products" WHERE base_code = \$1 AND active = \$2 ORDER BY .* LIMIT .*`).
			WithArgs("BAKC", true, 1).
			WillReturnRows(rows)

		product, err := repo.FindByBaseCode(context.Background(), "BAKC")

		assert.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, catalog.PackageTypeDisplay, product.PackageType)
		assert.Equal(t, 16, product.UnitsPerDisplay)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for unknown base code", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "canonical_products" WHERE base_code = \$1 AND active = \$2 ORDER BY .* LIMIT .*`).
			WithArgs("ZZZZ", true, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		product, err := repo.FindByBaseCode(context.Background(), "ZZZZ")

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Nil(t, product)
	})
}

func TestGormProductRepository_FindActive(t *testing.T) {
	t.Run("returns all active products ordered by SKU", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "sku", "name", "base_code", "package_type", "units_per_display", "active"}).
			AddRow(uuid.New(), "BAKC_U04010", "Galletas Surtidas", "BAKC", "unit", 1, true).
			AddRow(uuid.New(), "GRNL_U01", "Granola Master 500g", "GRNL", "unit", 1, true)

		mock.ExpectQuery(`SELECT \* FROM "canonical_products" WHERE active = \$1 ORDER BY sku ASC`).
			WithArgs(true).
			WillReturnRows(rows)

		products, err := repo.FindActive(context.Background())

		assert.NoError(t, err)
		assert.Len(t, products, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_FindAll(t *testing.T) {
	t.Run("applies search and pagination", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		rows := productRows(uuid.New(), "GRNL_U01", "Granola Master 500g", "GRNL", catalog.PackageTypeUnit, 1)

		mock.ExpectQuery(`SELECT \* FROM "canonical_products" WHERE name ILIKE \$1 OR sku ILIKE \$2 OR base_code ILIKE \$3 ORDER BY .* LIMIT .*`).
			WithArgs("%granola%", "%granola%", "%granola%", 20).
			WillReturnRows(rows)

		filter := shared.DefaultFilter()
		filter.Search = "granola"

		products, err := repo.FindAll(context.Background(), filter)

		assert.NoError(t, err)
		assert.Len(t, products, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_Count(t *testing.T) {
	t.Run("counts matching products", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "canonical_products"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		count, err := repo.Count(context.Background(), shared.Filter{})

		assert.NoError(t, err)
		assert.Equal(t, int64(7), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_Save(t *testing.T) {
	t.Run("updates an existing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		product, err := catalog.NewCanonicalProduct("BAKC_U04010", "Galletas Surtidas", "BAKC", catalog.PackageTypeUnit, 1)
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "canonical_products" SET .*`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Save(context.Background(), product))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_Delete(t *testing.T) {
	t.Run("deletes an existing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectExec(`DELETE FROM "canonical_products" WHERE id = \$1`).
			WithArgs(productID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), productID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when nothing was deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectExec(`DELETE FROM "canonical_products" WHERE id = \$1`).
			WithArgs(productID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), productID), shared.ErrNotFound)
	})
}

package specification

import (
	"testing"
	"time"

	"angus-connect-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRunDB builds SQL without touching a database.
func dryRunDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=dryrun dbname=dryrun",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

func TestRemateSpecificationsBuildExpectedClauses(t *testing.T) {
	db := dryRunDB(t)
	cabanaId := uuid.New()
	desde := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		spec       Specification
		wantClause string
		wantVar    interface{}
	}{
		{"by estado", ByEstado{Estado: "activo"}, "estado = $", "activo"},
		{"by categoria", ByCategoria{Categoria: "Toros"}, "categoria = $", "Toros"},
		{"by cabana", ByCabana{CabanaId: cabanaId}, "cabana_id = $", cabanaId},
		{"fecha desde", FechaDesde{Desde: desde}, "fecha >= $", desde},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out []model.Remate
			stmt := tt.spec.Apply(db.Model(&model.Remate{})).Find(&out).Statement

			assert.Contains(t, stmt.SQL.String(), tt.wantClause)
			assert.Contains(t, stmt.Vars, tt.wantVar)
		})
	}
}

func TestUserSpecificationsBuildExpectedClauses(t *testing.T) {
	db := dryRunDB(t)

	t.Run("by role", func(t *testing.T) {
		var out []model.UserRole
		stmt := ByRole{Role: "moderator"}.Apply(db.Model(&model.UserRole{})).Find(&out).Statement

		assert.Contains(t, stmt.SQL.String(), "role = $")
		assert.Contains(t, stmt.Vars, "moderator")
	})

	t.Run("active users", func(t *testing.T) {
		var out []model.User
		stmt := ActiveUsers{}.Apply(db.Model(&model.User{})).Find(&out).Statement

		assert.Contains(t, stmt.SQL.String(), "status = $")
		assert.Contains(t, stmt.Vars, "active")
	})
}

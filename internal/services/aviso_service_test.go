package services

import (
	"errors"
	"testing"

	"github.com/DapP256/trabajo-final-uai/internal/models"
	"github.com/DapP256/trabajo-final-uai/internal/repositories"
	"github.com/DapP256/trabajo-final-uai/internal/services/dto"
	"github.com/DapP256/trabajo-final-uai/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubAvisoRepo records deletes and can force the owner the store persists,
// which is how the post-create ownership re-check is made to fail.
type stubAvisoRepo struct {
	forcedEmpresaID string
	deleted         []string
	deleteErr       error
}

func (r *stubAvisoRepo) FindByID(db *gorm.DB, id string) (*models.Aviso, error) {
	return nil, repositories.ErrAvisoNotFound
}

func (r *stubAvisoRepo) Create(db *gorm.DB, aviso *models.Aviso) error {
	aviso.ID = "aviso-nuevo"
	if r.forcedEmpresaID != "" {
		aviso.EmpresaID = r.forcedEmpresaID
	}
	return nil
}

func (r *stubAvisoRepo) Update(db *gorm.DB, id string, fields map[string]interface{}) (*models.Aviso, error) {
	return nil, repositories.ErrAvisoNotFound
}

func (r *stubAvisoRepo) Delete(db *gorm.DB, id string) error {
	r.deleted = append(r.deleted, id)
	return r.deleteErr
}

func (r *stubAvisoRepo) List(db *gorm.DB, criteria repositories.AvisoFilter) ([]models.Aviso, error) {
	return nil, nil
}

// The ownership re-check runs against the persisted row; when the store
// hands back a row the caller may not manage, creation is denied and the
// insert is undone.
func TestAvisoCreateRollbackOnOwnershipMismatch(t *testing.T) {
	repo := &stubAvisoRepo{forcedEmpresaID: "empresa-ajena"}
	svc := NewAvisoService(repo)

	session := testSession("empresa-propia", models.UserRoleEmpresa)
	aviso, err := svc.Create(nil, session, &dto.CreateAvisoRequest{Titulo: "Repartidor"})

	assert.Nil(t, aviso)
	assert.ErrorIs(t, err, apperrors.ErrAccesoDenegado)
	require.Len(t, repo.deleted, 1)
	assert.Equal(t, "aviso-nuevo", repo.deleted[0])
}

// A failed rollback delete only logs; the caller still gets the denial.
func TestAvisoCreateRollbackDeleteFailureStillDenies(t *testing.T) {
	repo := &stubAvisoRepo{
		forcedEmpresaID: "empresa-ajena",
		deleteErr:       errors.New("database is locked"),
	}
	svc := NewAvisoService(repo)

	session := testSession("empresa-propia", models.UserRoleEmpresa)
	aviso, err := svc.Create(nil, session, &dto.CreateAvisoRequest{Titulo: "Repartidor"})

	assert.Nil(t, aviso)
	assert.ErrorIs(t, err, apperrors.ErrAccesoDenegado)
	assert.Len(t, repo.deleted, 1)
}

func TestAvisoCreateOwnershipMatchNoRollback(t *testing.T) {
	repo := &stubAvisoRepo{}
	svc := NewAvisoService(repo)

	session := testSession("empresa-propia", models.UserRoleEmpresa)
	aviso, err := svc.Create(nil, session, &dto.CreateAvisoRequest{Titulo: "Repartidor"})

	require.NoError(t, err)
	require.NotNil(t, aviso)
	assert.Equal(t, "empresa-propia", aviso.EmpresaID)
	assert.Empty(t, repo.deleted)
}

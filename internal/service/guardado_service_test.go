package service_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/jobsoutcuba/backend/internal/apperror"
	"github.com/jobsoutcuba/backend/internal/models"
	"github.com/jobsoutcuba/backend/internal/repository"
	"github.com/jobsoutcuba/backend/internal/service"
	"github.com/jobsoutcuba/backend/internal/testutil"
	"github.com/jobsoutcuba/backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type GuardadoServiceTestSuite struct {
	suite.Suite
	testDB      *testutil.TestDatabase
	svc         *service.GuardadoService
	usuario     *models.Usuario
	autor       *models.Usuario
	publicacion *models.Publicacion
}

func (s *GuardadoServiceTestSuite) SetupSuite() {
	logger.Init(false)
	s.testDB = testutil.SetupTestDatabase(s.T())

	guardadoRepo := repository.NewGuardadoRepository(s.testDB.DB)
	publicacionRepo := repository.NewPublicacionRepository(s.testDB.DB)
	s.svc = service.NewGuardadoService(guardadoRepo, publicacionRepo)
}

func (s *GuardadoServiceTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *GuardadoServiceTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)
	s.usuario = testutil.CreateUsuario(s.T(), s.testDB.DB, "lector", models.RolTrabajador)
	s.autor = testutil.CreateUsuario(s.T(), s.testDB.DB, "autor", models.RolTrabajador)
	trabajo := testutil.CreateTrabajo(s.T(), s.testDB.DB, s.autor.ID, models.EstadoPublicado)
	s.publicacion = testutil.CreatePublicacion(s.T(), s.testDB.DB, trabajo.ID, s.autor.ID, models.EstadoPublicado)
}

func (s *GuardadoServiceTestSuite) TestGuardar() {
	guardado, err := s.svc.Guardar(s.publicacion.ID, s.usuario.ID)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), s.publicacion.ID, guardado.PublicacionID)
	assert.Equal(s.T(), s.usuario.ID, guardado.UsuarioID)
}

func (s *GuardadoServiceTestSuite) TestGuardarDuplicadoConflicto() {
	_, err := s.svc.Guardar(s.publicacion.ID, s.usuario.ID)
	assert.NoError(s.T(), err)

	_, err = s.svc.Guardar(s.publicacion.ID, s.usuario.ID)
	assert.True(s.T(), apperror.Is(err, http.StatusConflict))

	// Still exactly one bookmark for the pair
	count, err := s.svc.CountByPublicacion(s.publicacion.ID)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), count)
}

func (s *GuardadoServiceTestSuite) TestGuardarPublicacionInexistente() {
	_, err := s.svc.Guardar(uuid.New(), s.usuario.ID)

	assert.True(s.T(), apperror.Is(err, http.StatusNotFound))
}

func (s *GuardadoServiceTestSuite) TestEliminar() {
	_, err := s.svc.Guardar(s.publicacion.ID, s.usuario.ID)
	assert.NoError(s.T(), err)

	err = s.svc.Eliminar(s.publicacion.ID, s.usuario.ID)
	assert.NoError(s.T(), err)

	err = s.svc.Eliminar(s.publicacion.ID, s.usuario.ID)
	assert.True(s.T(), apperror.Is(err, http.StatusNotFound))
}

func (s *GuardadoServiceTestSuite) TestEstaGuardada() {
	estado, err := s.svc.EstaGuardada(s.publicacion.ID, s.usuario.ID)
	assert.NoError(s.T(), err)
	assert.False(s.T(), estado.EstaGuardada)
	assert.Nil(s.T(), estado.FechaGuardado)

	_, err = s.svc.Guardar(s.publicacion.ID, s.usuario.ID)
	assert.NoError(s.T(), err)

	estado, err = s.svc.EstaGuardada(s.publicacion.ID, s.usuario.ID)
	assert.NoError(s.T(), err)
	assert.True(s.T(), estado.EstaGuardada)
	assert.NotNil(s.T(), estado.FechaGuardado)
}

func (s *GuardadoServiceTestSuite) TestListByUsuarioHasMore() {
	trabajo := testutil.CreateTrabajo(s.T(), s.testDB.DB, s.autor.ID, models.EstadoPublicado)
	for i := 0; i < 2; i++ {
		p := testutil.CreatePublicacion(s.T(), s.testDB.DB, trabajo.ID, s.autor.ID, models.EstadoPublicado)
		_, err := s.svc.Guardar(p.ID, s.usuario.ID)
		assert.NoError(s.T(), err)
	}
	_, err := s.svc.Guardar(s.publicacion.ID, s.usuario.ID)
	assert.NoError(s.T(), err)

	page, err := s.svc.ListByUsuario(s.usuario.ID, 2, 0)
	assert.NoError(s.T(), err)
	assert.Len(s.T(), page.Guardados, 2)
	assert.Equal(s.T(), int64(3), page.Total)
	assert.True(s.T(), page.HasMore)

	last, err := s.svc.ListByUsuario(s.usuario.ID, 2, 2)
	assert.NoError(s.T(), err)
	assert.Len(s.T(), last.Guardados, 1)
	assert.False(s.T(), last.HasMore)

	// Bookmarks carry the posting and its job
	assert.NotNil(s.T(), page.Guardados[0].Publicacion)
	assert.NotNil(s.T(), page.Guardados[0].Publicacion.Trabajo)
}

func TestGuardadoServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GuardadoServiceTestSuite))
}

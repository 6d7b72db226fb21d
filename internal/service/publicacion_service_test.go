package service_test

import (
	"net/http"
	"testing"

	"github.com/jobsoutcuba/backend/internal/apperror"
	"github.com/jobsoutcuba/backend/internal/models"
	"github.com/jobsoutcuba/backend/internal/repository"
	"github.com/jobsoutcuba/backend/internal/service"
	"github.com/jobsoutcuba/backend/internal/testutil"
	"github.com/jobsoutcuba/backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type PublicacionServiceTestSuite struct {
	suite.Suite
	testDB  *testutil.TestDatabase
	svc     *service.PublicacionService
	dueno   *models.Usuario
	otro    *models.Usuario
	trabajo *models.Trabajo
}

func (s *PublicacionServiceTestSuite) SetupSuite() {
	logger.Init(false)
	s.testDB = testutil.SetupTestDatabase(s.T())

	publicacionRepo := repository.NewPublicacionRepository(s.testDB.DB)
	trabajoRepo := repository.NewTrabajoRepository(s.testDB.DB)
	s.svc = service.NewPublicacionService(publicacionRepo, trabajoRepo, nil)
}

func (s *PublicacionServiceTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *PublicacionServiceTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)
	s.dueno = testutil.CreateUsuario(s.T(), s.testDB.DB, "dueno", models.RolTrabajador)
	s.otro = testutil.CreateUsuario(s.T(), s.testDB.DB, "otro", models.RolTrabajador)
	s.trabajo = testutil.CreateTrabajo(s.T(), s.testDB.DB, s.dueno.ID, models.EstadoPublicado)
}

func (s *PublicacionServiceTestSuite) TestCrear() {
	publicacion, err := s.svc.Crear(s.trabajo.ID, "", "", s.dueno.ID)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), models.EstadoPublicado, publicacion.Estado)
	assert.False(s.T(), publicacion.PublicadoEn.IsZero())
	assert.NotNil(s.T(), publicacion.Trabajo)
}

func (s *PublicacionServiceTestSuite) TestCrearTrabajoAjeno() {
	_, err := s.svc.Crear(s.trabajo.ID, "", "", s.otro.ID)

	assert.True(s.T(), apperror.Is(err, http.StatusNotFound))
}

func (s *PublicacionServiceTestSuite) TestRepublicarCreaFilasDistintas() {
	primera, err := s.svc.Crear(s.trabajo.ID, "", "", s.dueno.ID)
	assert.NoError(s.T(), err)

	segunda, err := s.svc.Republicar(s.trabajo.ID, s.dueno.ID, "")
	assert.NoError(s.T(), err)

	assert.NotEqual(s.T(), primera.ID, segunda.ID)
	assert.Equal(s.T(), models.EstadoPublicado, segunda.Estado)

	// Both rows coexist
	result, err := s.svc.ListMine(s.dueno.ID, repository.PublicacionFilters{}, 50, 0)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), int64(2), result.Total)
}

func (s *PublicacionServiceTestSuite) TestEliminarArchivaSinBorrar() {
	publicacion, err := s.svc.Crear(s.trabajo.ID, "", "", s.dueno.ID)
	assert.NoError(s.T(), err)

	err = s.svc.Eliminar(publicacion.ID, s.dueno.ID)
	assert.NoError(s.T(), err)

	// Row stays fetchable, now archived
	reloaded, err := s.svc.GetByID(publicacion.ID, nil)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), models.EstadoArchivado, reloaded.Estado)
}

func (s *PublicacionServiceTestSuite) TestEliminarAjenaNoAutorizada() {
	publicacion, err := s.svc.Crear(s.trabajo.ID, "", "", s.dueno.ID)
	assert.NoError(s.T(), err)

	err = s.svc.Eliminar(publicacion.ID, s.otro.ID)
	assert.True(s.T(), apperror.Is(err, http.StatusNotFound))
}

func (s *PublicacionServiceTestSuite) TestActualizarDiffVacio() {
	publicacion, err := s.svc.Crear(s.trabajo.ID, "", "", s.dueno.ID)
	assert.NoError(s.T(), err)

	unchanged, err := s.svc.Actualizar(publicacion.ID, nil, nil, s.dueno.ID)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), publicacion.Estado, unchanged.Estado)
	assert.Equal(s.T(), publicacion.ImagenURL, unchanged.ImagenURL)
}

func (s *PublicacionServiceTestSuite) TestActualizarEstadoInvalido() {
	publicacion, err := s.svc.Crear(s.trabajo.ID, "", "", s.dueno.ID)
	assert.NoError(s.T(), err)

	malo := models.Estado("volando")
	_, err = s.svc.Actualizar(publicacion.ID, &malo, nil, s.dueno.ID)
	assert.True(s.T(), apperror.Is(err, http.StatusBadRequest))
}

func (s *PublicacionServiceTestSuite) TestGetByIDSinGateDeEstado() {
	publicacion, err := s.svc.Crear(s.trabajo.ID, models.EstadoBorrador, "", s.dueno.ID)
	assert.NoError(s.T(), err)

	// Draft postings stay reachable by direct link, even anonymously
	fetched, err := s.svc.GetByID(publicacion.ID, nil)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), models.EstadoBorrador, fetched.Estado)
}

func (s *PublicacionServiceTestSuite) TestListHasMoreExacto() {
	for i := 0; i < 5; i++ {
		_, err := s.svc.Crear(s.trabajo.ID, "", "", s.dueno.ID)
		assert.NoError(s.T(), err)
	}

	page, err := s.svc.List(repository.PublicacionFilters{Estado: models.EstadoPublicado}, 2, 0)
	assert.NoError(s.T(), err)
	assert.Len(s.T(), page.Publicaciones, 2)
	assert.Equal(s.T(), int64(5), page.Total)
	assert.True(s.T(), page.HasMore)
	for _, p := range page.Publicaciones {
		assert.Equal(s.T(), models.EstadoPublicado, p.Estado)
		assert.Equal(s.T(), s.trabajo.ID, p.TrabajoID)
	}

	last, err := s.svc.List(repository.PublicacionFilters{Estado: models.EstadoPublicado}, 2, 4)
	assert.NoError(s.T(), err)
	assert.Len(s.T(), last.Publicaciones, 1)
	assert.False(s.T(), last.HasMore)
}

func (s *PublicacionServiceTestSuite) TestListDevuelveFilasCompletas() {
	creada, err := s.svc.Crear(s.trabajo.ID, "", "https://cdn.example.com/foto.jpg", s.dueno.ID)
	assert.NoError(s.T(), err)

	// The unfiltered public page runs a count and a find over the same
	// builder; every column and preload must survive the count.
	page, err := s.svc.List(repository.PublicacionFilters{}, 50, 0)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), page.Total)
	assert.Len(s.T(), page.Publicaciones, 1)

	row := page.Publicaciones[0]
	assert.Equal(s.T(), creada.ID, row.ID)
	assert.Equal(s.T(), s.trabajo.ID, row.TrabajoID)
	assert.Equal(s.T(), models.EstadoPublicado, row.Estado)
	assert.Equal(s.T(), "https://cdn.example.com/foto.jpg", row.ImagenURL)
	assert.False(s.T(), row.PublicadoEn.IsZero())
	if assert.NotNil(s.T(), row.Trabajo) {
		assert.Equal(s.T(), "Cocinero para restaurante", row.Trabajo.Titulo)
	}
	if assert.NotNil(s.T(), row.Autor) {
		assert.Equal(s.T(), s.dueno.ID, row.Autor.ID)
	}
}

func (s *PublicacionServiceTestSuite) TestListMineFilasCompletas() {
	_, err := s.svc.Crear(s.trabajo.ID, "", "", s.dueno.ID)
	assert.NoError(s.T(), err)

	result, err := s.svc.ListMine(s.dueno.ID, repository.PublicacionFilters{}, 50, 0)
	assert.NoError(s.T(), err)
	assert.Len(s.T(), result.Publicaciones, 1)

	row := result.Publicaciones[0]
	assert.Equal(s.T(), models.EstadoPublicado, row.Estado)
	assert.Equal(s.T(), s.trabajo.ID, row.TrabajoID)
	assert.NotNil(s.T(), row.Trabajo)
}

func (s *PublicacionServiceTestSuite) TestEstadisticas() {
	_, err := s.svc.Crear(s.trabajo.ID, "", "", s.dueno.ID)
	assert.NoError(s.T(), err)
	p, err := s.svc.Crear(s.trabajo.ID, "", "", s.dueno.ID)
	assert.NoError(s.T(), err)
	assert.NoError(s.T(), s.svc.Eliminar(p.ID, s.dueno.ID))

	stats, err := s.svc.Estadisticas(&s.dueno.ID)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), int64(2), stats.Total)
	assert.Equal(s.T(), int64(1), stats.Publicados)
	assert.Equal(s.T(), int64(1), stats.Archivados)
	assert.Equal(s.T(), int64(2), stats.Ultimas24Horas)
}

func (s *PublicacionServiceTestSuite) TestEsPropia() {
	publicacion, err := s.svc.Crear(s.trabajo.ID, "", "", s.dueno.ID)
	assert.NoError(s.T(), err)

	propia, err := s.svc.EsPropia(publicacion.ID, s.dueno.ID)
	assert.NoError(s.T(), err)
	assert.True(s.T(), propia)

	ajena, err := s.svc.EsPropia(publicacion.ID, s.otro.ID)
	assert.NoError(s.T(), err)
	assert.False(s.T(), ajena)
}

func TestPublicacionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PublicacionServiceTestSuite))
}

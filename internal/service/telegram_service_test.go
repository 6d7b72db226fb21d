package service_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/jobsoutcuba/backend/internal/apperror"
	"github.com/jobsoutcuba/backend/internal/models"
	"github.com/jobsoutcuba/backend/internal/repository"
	"github.com/jobsoutcuba/backend/internal/service"
	"github.com/jobsoutcuba/backend/internal/telegram"
	"github.com/jobsoutcuba/backend/internal/testutil"
	"github.com/jobsoutcuba/backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// stubBot satisfies BotInfo without talking to Telegram.
type stubBot struct {
	active bool
}

func (b *stubBot) IsActive() bool { return b.active }
func (b *stubBot) Username() string {
	if !b.active {
		return ""
	}
	return "JobsOutCubaBot"
}
func (b *stubBot) Link() string {
	if !b.active {
		return ""
	}
	return "https://t.me/JobsOutCubaBot"
}

type TelegramServiceTestSuite struct {
	suite.Suite
	testDB     *testutil.TestDatabase
	registry   *telegram.CodeRegistry
	configRepo *repository.ConfiguracionRepository
	sender     *fakeSender
	svc        *service.TelegramService
	usuario    *models.Usuario
}

func (s *TelegramServiceTestSuite) SetupSuite() {
	logger.Init(false)
	s.testDB = testutil.SetupTestDatabase(s.T())
	s.configRepo = repository.NewConfiguracionRepository(s.testDB.DB)
}

func (s *TelegramServiceTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *TelegramServiceTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)
	s.registry = telegram.NewCodeRegistry(time.Minute)
	s.sender = newFakeSender()
	usuarioRepo := repository.NewUsuarioRepository(s.testDB.DB)
	s.svc = service.NewTelegramService(s.registry, s.configRepo, usuarioRepo, &stubBot{active: true}, s.sender, 10*time.Minute)
	s.usuario = testutil.CreateUsuario(s.T(), s.testDB.DB, "walter", models.RolTrabajador)
}

func (s *TelegramServiceTestSuite) TearDownTest() {
	s.registry.Stop()
}

func (s *TelegramServiceTestSuite) TestActivate() {
	info, err := s.svc.Activate(s.usuario.ID)

	assert.NoError(s.T(), err)
	assert.Regexp(s.T(), `^\d{6}$`, info.Code)
	assert.Equal(s.T(), "JobsOutCubaBot", info.BotUsername)
	assert.Equal(s.T(), "https://t.me/JobsOutCubaBot", info.BotLink)
	assert.Equal(s.T(), "10 minutos", info.ExpiresIn)

	// The issued code is live in the registry
	redeemed, ok := s.registry.Redeem(info.Code)
	assert.True(s.T(), ok)
	assert.Equal(s.T(), s.usuario.ID, redeemed)
}

func (s *TelegramServiceTestSuite) TestActivateBotInactivo() {
	usuarioRepo := repository.NewUsuarioRepository(s.testDB.DB)
	svc := service.NewTelegramService(s.registry, s.configRepo, usuarioRepo, &stubBot{active: false}, s.sender, 10*time.Minute)

	_, err := svc.Activate(s.usuario.ID)
	assert.True(s.T(), apperror.Is(err, http.StatusServiceUnavailable))
}

func (s *TelegramServiceTestSuite) TestActivateVariasVeces() {
	primero, err := s.svc.Activate(s.usuario.ID)
	assert.NoError(s.T(), err)
	segundo, err := s.svc.Activate(s.usuario.ID)
	assert.NoError(s.T(), err)

	// Both codes stay live
	assert.NotEqual(s.T(), primero.Code, segundo.Code)
	assert.Equal(s.T(), 2, s.registry.Live())
}

func (s *TelegramServiceTestSuite) TestStatusCreaConfigPorDefecto() {
	status, err := s.svc.Status(s.usuario.ID)

	assert.NoError(s.T(), err)
	assert.False(s.T(), status.TelegramNotif)
	assert.Nil(s.T(), status.TelegramChatID)
	assert.True(s.T(), status.BotActive)
}

func (s *TelegramServiceTestSuite) TestDeactivate() {
	testutil.CreateConfiguracion(s.T(), s.testDB.DB, s.usuario.ID, true, "12345")

	assert.NoError(s.T(), s.svc.Deactivate(s.usuario.ID))

	status, err := s.svc.Status(s.usuario.ID)
	assert.NoError(s.T(), err)
	assert.False(s.T(), status.TelegramNotif)
	assert.Nil(s.T(), status.TelegramChatID)

	// Deactivating again is a no-op
	assert.NoError(s.T(), s.svc.Deactivate(s.usuario.ID))
}

func (s *TelegramServiceTestSuite) TestSendTest() {
	testutil.CreateConfiguracion(s.T(), s.testDB.DB, s.usuario.ID, true, "12345")

	assert.NoError(s.T(), s.svc.SendTest(s.usuario.ID))
	assert.Equal(s.T(), []string{"12345"}, s.sender.sent)
}

func (s *TelegramServiceTestSuite) TestSendTestSinActivar() {
	err := s.svc.SendTest(s.usuario.ID)

	assert.True(s.T(), apperror.Is(err, http.StatusBadRequest))
	assert.Equal(s.T(), "No tienes notificaciones activas", err.Error())
	assert.Empty(s.T(), s.sender.sent)
}

func (s *TelegramServiceTestSuite) TestUpdateSettings() {
	testutil.CreateConfiguracion(s.T(), s.testDB.DB, s.usuario.ID, true, "12345")

	config, err := s.svc.UpdateSettings(s.usuario.ID, false)
	assert.NoError(s.T(), err)
	assert.False(s.T(), config.TelegramNotif)
	// Chat id survives a settings toggle
	assert.NotNil(s.T(), config.TelegramChatID)
}

func TestTelegramServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TelegramServiceTestSuite))
}

package repositories

import (
	"context"
	"testing"
	"time"

	"clearspendly/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type SetupLogRepoTestSuite struct {
	suite.Suite
	mock      pgxmock.PgxPoolIface
	repo      SetupLogRepository
	tenantID  uuid.UUID
	sessionID uuid.UUID
	context   context.Context
}

func (suite *SetupLogRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewSetupLogRepo(mock)
	suite.tenantID = uuid.New()
	suite.sessionID = uuid.New()
	suite.context = context.Background()
}

func (suite *SetupLogRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestSetupLogRepoTestSuite(t *testing.T) {
	suite.Run(t, new(SetupLogRepoTestSuite))
}

func (suite *SetupLogRepoTestSuite) TestCreate_Success() {
	log := &models.SetupLog{
		ID:             uuid.New(),
		SessionID:      suite.sessionID,
		TenantID:       suite.tenantID,
		UserID:         uuid.New(),
		StepsCompleted: 0,
		SetupData:      models.JSONB{"status": "started"},
	}

	suite.mock.ExpectExec(`
		INSERT INTO setup_logs \(id, session_id, tenant_id, user_id, steps_completed, setup_data, created_at, updated_at\)
		VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, NOW\(\), NOW\(\)\)
	`).WithArgs(log.ID, log.SessionID, log.TenantID, log.UserID, log.StepsCompleted, log.SetupData).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, log)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *SetupLogRepoTestSuite) TestUpdateBySession_Success() {
	setupData := models.JSONB{"status": "completed", "steps_completed": 8}

	suite.mock.ExpectExec(`
		UPDATE setup_logs
		SET steps_completed = \$1, setup_data = \$2, updated_at = NOW\(\)
		WHERE session_id = \$3
	`).WithArgs(8, setupData, suite.sessionID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.UpdateBySession(suite.context, suite.sessionID, 8, setupData)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *SetupLogRepoTestSuite) TestGetBySession_Success() {
	now := time.Now()
	logID := uuid.New()
	userID := uuid.New()

	suite.mock.ExpectQuery(`
		SELECT id, session_id, tenant_id, user_id, steps_completed, setup_data, created_at, updated_at
		FROM setup_logs
		WHERE session_id = \$1
	`).WithArgs(suite.sessionID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "session_id", "tenant_id", "user_id", "steps_completed", "setup_data", "created_at", "updated_at"}).
			AddRow(logID, suite.sessionID, suite.tenantID, userID, 8, models.JSONB{"status": "completed"}, now, now))

	log, err := suite.repo.GetBySession(suite.context, suite.sessionID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), logID, log.ID)
	assert.Equal(suite.T(), 8, log.StepsCompleted)
	assert.Equal(suite.T(), "completed", log.SetupData["status"])
}

func (suite *SetupLogRepoTestSuite) TestGetBySession_NotFound() {
	suite.mock.ExpectQuery(`
		SELECT id, session_id, tenant_id, user_id, steps_completed, setup_data, created_at, updated_at
		FROM setup_logs
		WHERE session_id = \$1
	`).WithArgs(suite.sessionID).
		WillReturnError(pgx.ErrNoRows)

	log, err := suite.repo.GetBySession(suite.context, suite.sessionID)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), log)
}

func (suite *SetupLogRepoTestSuite) TestExistsForTenant_True() {
	suite.mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM setup_logs WHERE tenant_id = \$1 LIMIT 1\)`).
		WithArgs(suite.tenantID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := suite.repo.ExistsForTenant(suite.context, suite.tenantID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), exists)
}

package redis_test

import (
	"context"
	"testing"
	"time"

	redisadapter "fooddelivery/internal/adapters/out/redis"
	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type DeviceTokenStoreIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *goredis.Client
	store     *redisadapter.DeviceTokenStore
}

func TestDeviceTokenStoreIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(DeviceTokenStoreIntegrationTestSuite))
}

func (suite *DeviceTokenStoreIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	endpoint, err := container.Endpoint(ctx, "")
	suite.Require().NoError(err)

	suite.client = goredis.NewClient(&goredis.Options{Addr: endpoint})
	suite.Require().NoError(suite.client.Ping(ctx).Err())
	suite.store = redisadapter.NewDeviceTokenStore(suite.client)
}

func (suite *DeviceTokenStoreIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.client.FlushAll(context.Background()).Err())
}

func (suite *DeviceTokenStoreIntegrationTestSuite) TearDownSuite() {
	if suite.client != nil {
		suite.Require().NoError(suite.client.Close())
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DeviceTokenStoreIntegrationTestSuite) TestTokenFor_Missing() {
	_, ok, err := suite.store.TokenFor(suite.T().Context(), kernel.NewUUID())

	suite.Require().NoError(err)
	suite.False(ok)
}

func (suite *DeviceTokenStoreIntegrationTestSuite) TestRegisterToken_ReplacesPrevious() {
	ctx := suite.T().Context()
	actorID := kernel.NewUUID()

	for _, value := range []string{"fcm-old", "fcm-new"} {
		token, err := actor.NewDeviceToken(value)
		suite.Require().NoError(err)
		suite.Require().NoError(suite.store.RegisterToken(ctx, actorID, token))
	}

	token, ok, err := suite.store.TokenFor(ctx, actorID)
	suite.Require().NoError(err)
	suite.True(ok)
	suite.Equal("fcm-new", token.String())
}

func (suite *DeviceTokenStoreIntegrationTestSuite) TestRegisterToken_RejectsZeroToken() {
	err := suite.store.RegisterToken(suite.T().Context(), kernel.NewUUID(), actor.DeviceToken{})

	suite.Require().ErrorIs(err, actor.ErrDeviceTokenIsNotConstructed)
}

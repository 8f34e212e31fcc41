package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/fotracker/fotracker/docs"
	v1 "github.com/fotracker/fotracker/internal/api/handler/v1"
	"github.com/fotracker/fotracker/internal/api/middleware"
	"github.com/fotracker/fotracker/internal/config"
	"github.com/fotracker/fotracker/internal/repository"
	"github.com/fotracker/fotracker/internal/repository/dao"
	"github.com/fotracker/fotracker/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

// NewServer wires the full handler stack onto a gin engine. localDB is
// an optional secondary store used as the migration source; pass nil
// when none is configured.
func NewServer(conf *config.AppConfig, db *gorm.DB, localDB *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	trackerHandler, folderHandler, rosterHandler := s.initTrackerHandlers(db, localDB)
	s.MountHandlers(authHandler, userHandler, trackerHandler, folderHandler, rosterHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initTrackerHandlers(db *gorm.DB, localDB *gorm.DB) (*v1.TrackerHandler, *v1.FolderHandler, *v1.RosterHandler) {
	store := repository.NewStoreRepository(dao.NewStoreDAO(db))
	sessions := service.NewSessionManager(store)

	var migrator *service.MigrationService
	if localDB != nil {
		localStore := repository.NewStoreRepository(dao.NewStoreDAO(localDB))
		migrator = service.NewMigrationService(localStore, store)
	}

	return v1.NewTrackerHandler(sessions, migrator),
		v1.NewFolderHandler(sessions),
		v1.NewRosterHandler(sessions)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

// authMiddleware picks the authenticator: JWT verification normally, a
// fixed local identity when the store runs off a local sqlite file.
func (s *Server) authMiddleware() gin.HandlerFunc {
	if s.Config.Storage != nil && s.Config.Storage.Driver == "sqlite" {
		return middleware.LocalIdentity()
	}

	return middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT()
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	trackerHandler *v1.TrackerHandler,
	folderHandler *v1.FolderHandler,
	rosterHandler *v1.RosterHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	users := s.Router.Group(basePath, s.authMiddleware())
	{
		users.GET("/users/:userID", userHandler.HandleGetUser)
	}

	tracker := s.Router.Group(basePath, s.authMiddleware())
	{
		tracker.GET("/session", trackerHandler.HandleGetSession)
		tracker.POST("/session/save", trackerHandler.HandleSave)
		tracker.PUT("/session/current-game", trackerHandler.HandleSetCurrentGame)
		tracker.POST("/session/migrate", trackerHandler.HandleMigrate)

		tracker.GET("/games", trackerHandler.HandleListGames)
		tracker.POST("/games", trackerHandler.HandleCreateGame)
		tracker.GET("/games/:gameID", trackerHandler.HandleGetGame)
		tracker.DELETE("/games/:gameID", trackerHandler.HandleDeleteGame)
		tracker.POST("/games/:gameID/folder", trackerHandler.HandleMoveGame)

		tracker.GET("/games/:gameID/pins", trackerHandler.HandleGetPins)
		tracker.POST("/games/:gameID/pins", trackerHandler.HandleAddPin)
		tracker.DELETE("/games/:gameID/pins/last", trackerHandler.HandleRemoveLastPin)
		tracker.DELETE("/games/:gameID/pins", trackerHandler.HandleClearPins)

		tracker.GET("/games/:gameID/stats", trackerHandler.HandleGameStats)
		tracker.GET("/games/:gameID/player-stats", trackerHandler.HandlePlayerStats)
		tracker.GET("/games/:gameID/filter-players", trackerHandler.HandleFilterPlayers)

		tracker.GET("/games/:gameID/roster", rosterHandler.HandleGetRoster)
		tracker.POST("/games/:gameID/roster", rosterHandler.HandleAddRosterEntry)
		tracker.DELETE("/games/:gameID/roster/:playerID", rosterHandler.HandleRemoveRosterEntry)
		tracker.POST("/games/:gameID/roster/import", rosterHandler.HandleImportRoster)

		tracker.GET("/players", rosterHandler.HandleListPlayers)
		tracker.POST("/players", rosterHandler.HandleCreatePlayer)
		tracker.DELETE("/players/:playerID", rosterHandler.HandleDeletePlayer)

		tracker.GET("/folders", folderHandler.HandleListFolders)
		tracker.POST("/folders", folderHandler.HandleCreateFolder)
		tracker.PATCH("/folders/:folderID", folderHandler.HandleRenameFolder)
		tracker.DELETE("/folders/:folderID", folderHandler.HandleDeleteFolder)
		tracker.GET("/folders/:folderID/stats", folderHandler.HandleFolderStats)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Face-Off Tracker API"
	docs.SwaggerInfo.Description = "Lacrosse face-off statistics tracker."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/campusday/orientation-api/docs"
	v1 "github.com/campusday/orientation-api/internal/api/handler/v1"
	"github.com/campusday/orientation-api/internal/api/middleware"
	"github.com/campusday/orientation-api/internal/config"
	"github.com/campusday/orientation-api/internal/domain"
	"github.com/campusday/orientation-api/internal/pkg/blobstore"
	"github.com/campusday/orientation-api/internal/repository"
	"github.com/campusday/orientation-api/internal/repository/dao"
	"github.com/campusday/orientation-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB, blobStore blobstore.Store) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	activityRepo := repository.NewActivityRepository(dao.NewActivityDAO(db))
	submissionRepo := repository.NewSubmissionRepository(dao.NewSubmissionDAO(db))

	userSvc := service.NewUserService(userRepo)
	authSvc := service.NewAuthService(userRepo)
	activitySvc := service.NewActivityService(activityRepo, submissionRepo)
	submissionSvc := service.NewSubmissionService(submissionRepo, activityRepo)

	authHandler := v1.NewAuthHandler(conf.API, authSvc)
	userHandler := v1.NewUserHandler(userSvc)
	activityHandler := v1.NewActivityHandler(activitySvc, submissionSvc)
	submissionHandler := v1.NewSubmissionHandler(submissionSvc)
	uploadHandler := v1.NewUploadHandler(blobStore, conf.Uploads.MaxSizeMiB)

	authenticator := middleware.NewAuthenticator(conf.API.JWTSigningKey, userSvc)

	s.MountHandlers(authenticator, authHandler, userHandler, activityHandler, submissionHandler, uploadHandler)

	return s
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authenticator *middleware.Authenticator,
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	activityHandler *v1.ActivityHandler,
	submissionHandler *v1.SubmissionHandler,
	uploadHandler *v1.UploadHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	verified := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		verified.GET("/activities", activityHandler.HandleListActivities)
		verified.GET("/activities/:activityID", activityHandler.HandleGetActivity)
		verified.GET("/users/:userID", userHandler.HandleGetUser)
		verified.GET("/brigades", userHandler.HandleListBrigades)
		verified.POST("/uploads", uploadHandler.HandleUpload)
	}

	students := s.Router.Group(basePath, authenticator.VerifyJWT(), middleware.RequireRoles(domain.RoleStudent))
	{
		students.POST("/activities/:activityID/submissions", submissionHandler.HandleCreateSubmission)
		students.GET("/submissions/mine", submissionHandler.HandleListMySubmissions)
	}

	admins := s.Router.Group(basePath, authenticator.VerifyJWT(), middleware.RequireRoles(domain.RoleAdmin))
	{
		admins.POST("/activities", activityHandler.HandleCreateActivity)
		admins.PUT("/activities/:activityID", activityHandler.HandleUpdateActivity)
		admins.GET("/submissions", submissionHandler.HandleListSubmissions)
		admins.PATCH("/submissions/:submissionID/status", submissionHandler.HandleSetSubmissionStatus)
		admins.POST("/users", userHandler.HandleCreateUser)
		admins.PATCH("/users/:userID", userHandler.HandleUpdateUser)
		admins.POST("/brigades", userHandler.HandleCreateBrigade)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Orientation Day API"
	docs.SwaggerInfo.Description = "Fresher-orientation event-day management portal."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

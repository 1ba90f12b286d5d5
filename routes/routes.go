package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hazaribi/google-drive-clone-backend-secure/config"
	"github.com/hazaribi/google-drive-clone-backend-secure/middleware"
	"github.com/hazaribi/google-drive-clone-backend-secure/services"
)

// ServiceContainer holds every service the route groups depend on.
type ServiceContainer struct {
	DB                *mongo.Database
	JWTSecret         string
	JWTIssuer         string
	StorageService    *services.StorageService
	PermissionService *services.PermissionService
	FolderService     *services.FolderService
	FileService       *services.FileService
	TrashService      *services.TrashService
	ShareService      *services.ShareService
	SearchService     *services.SearchService
	MaxFileSize       int64
}

// NewServiceContainer wires the full service graph from config.
func NewServiceContainer(ctx context.Context, db *mongo.Database, cfg *config.Config) (*ServiceContainer, error) {
	storageService, err := services.NewStorageService(ctx, cfg.B2ApplicationKeyID, cfg.B2ApplicationKey, cfg.B2BucketName)
	if err != nil {
		return nil, err
	}

	permissionService := services.NewPermissionService(db)
	folderService := services.NewFolderService(db, permissionService)
	fileService := services.NewFileService(db, storageService, permissionService)
	trashService := services.NewTrashService(db, storageService, permissionService)
	shareService := services.NewShareService(db, storageService, permissionService, cfg.ShareBaseURL)
	searchService := services.NewSearchService(db, permissionService)

	return &ServiceContainer{
		DB:                db,
		JWTSecret:         cfg.JWTSecret,
		JWTIssuer:         cfg.JWTIssuer,
		StorageService:    storageService,
		PermissionService: permissionService,
		FolderService:     folderService,
		FileService:       fileService,
		TrashService:      trashService,
		ShareService:      shareService,
		SearchService:     searchService,
		MaxFileSize:       cfg.MaxFileSize,
	}, nil
}

// SetupRoutes registers all route groups on the API router group.
// Public share routes skip authentication; everything else is gated by
// the auth middleware. The throttle runs after authentication so its
// buckets key by caller id; on the anonymous share routes it keys by
// client IP.
func SetupRoutes(api *gin.RouterGroup, container *ServiceContainer, limiter *middleware.RateLimiter) {
	public := api.Group("")
	public.Use(limiter.Middleware())
	RegisterPublicShareRoutes(public, container)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(container.JWTSecret, container.JWTIssuer))
	authed.Use(limiter.Middleware())

	RegisterFolderRoutes(authed, container)
	RegisterFileRoutes(authed, container)
	RegisterTrashRoutes(authed, container)
	RegisterShareRoutes(authed, container)
	RegisterSearchRoutes(authed, container)
	RegisterPermissionRoutes(authed, container)
}

package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hazaribi/google-drive-clone-backend-secure/models"
	"github.com/hazaribi/google-drive-clone-backend-secure/utils"
)

const (
	searchDefaultLimit  = 20
	searchMaxLimit      = 50
	advancedSearchLimit = 50
)

// SearchService is the ranked lookup across both resource kinds.
// Matching and relevance come from the store's text index on the name
// column; ordering is relevance DESC with created-at DESC breaking
// ties.
type SearchService struct {
	fileCollection    *mongo.Collection
	folderCollection  *mongo.Collection
	permissionService *PermissionService
}

type SearchParams struct {
	Query string
	Kind  string // "files", "folders" or "all"
	Limit int
	Page  int
}

// AdvancedSearchParams applies to files only and, unlike basic search,
// is scoped strictly to the caller's own files. Shared files never
// appear here.
type AdvancedSearchParams struct {
	Query         string
	MimeType      string
	MinSize       *int64
	MaxSize       *int64
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

type scoredFile struct {
	models.File `bson:",inline"`
	Score       float64 `bson:"score" json:"-"`
}

type scoredFolder struct {
	models.Folder `bson:",inline"`
	Score         float64 `bson:"score" json:"-"`
}

type SearchResult struct {
	Files          []models.File   `json:"files,omitempty"`
	Folders        []models.Folder `json:"folders,omitempty"`
	HasMoreFiles   bool            `json:"has_more_files"`
	HasMoreFolders bool            `json:"has_more_folders"`
	Page           int             `json:"page"`
	Limit          int             `json:"limit"`
}

func NewSearchService(db *mongo.Database, permissionService *PermissionService) *SearchService {
	return &SearchService{
		fileCollection:    db.Collection("files"),
		folderCollection:  db.Collection("folders"),
		permissionService: permissionService,
	}
}

// normalizeSearchParams clamps paging to 1..searchMaxLimit and fills
// defaults. Returns an error for an empty query or unknown kind.
func normalizeSearchParams(p SearchParams) (SearchParams, error) {
	if p.Query == "" {
		return p, fmt.Errorf("query cannot be empty: %w", utils.ErrInvalidArgument)
	}
	switch p.Kind {
	case "":
		p.Kind = "all"
	case "files", "folders", "all":
	default:
		return p, fmt.Errorf("unknown kind %q: %w", p.Kind, utils.ErrInvalidArgument)
	}
	if p.Limit <= 0 {
		p.Limit = searchDefaultLimit
	}
	if p.Limit > searchMaxLimit {
		p.Limit = searchMaxLimit
	}
	if p.Page <= 0 {
		p.Page = 1
	}
	return p, nil
}

// Search runs the basic ranked search. Visibility per kind: the caller
// owns the resource or holds a grant of any level on it, and the
// resource is not trashed. Pagination is offset-based and independent
// per kind; a kind "has more" when it returned exactly a full page.
func (s *SearchService) Search(ctx context.Context, callerID primitive.ObjectID, params SearchParams) (*SearchResult, error) {
	params, err := normalizeSearchParams(params)
	if err != nil {
		return nil, err
	}

	result := &SearchResult{Page: params.Page, Limit: params.Limit}
	skip := int64((params.Page - 1) * params.Limit)

	findOpts := options.Find().
		SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetSort(bson.D{
			{Key: "score", Value: bson.M{"$meta": "textScore"}},
			{Key: "created_at", Value: -1},
		}).
		SetSkip(skip).
		SetLimit(int64(params.Limit))

	if params.Kind == "files" || params.Kind == "all" {
		scope, err := s.visibilityScope(ctx, callerID, models.ResourceTypeFile)
		if err != nil {
			return nil, err
		}
		filter := bson.M{
			"$text":      bson.M{"$search": params.Query},
			"trashed_at": nil,
			"$or":        scope,
		}

		cursor, err := s.fileCollection.Find(ctx, filter, findOpts)
		if err != nil {
			return nil, storeError("file search", err)
		}
		var scored []scoredFile
		if err := cursor.All(ctx, &scored); err != nil {
			return nil, storeError("file search decode", err)
		}

		result.Files = make([]models.File, 0, len(scored))
		for _, sf := range scored {
			result.Files = append(result.Files, sf.File)
		}
		result.HasMoreFiles = len(scored) == params.Limit
	}

	if params.Kind == "folders" || params.Kind == "all" {
		scope, err := s.visibilityScope(ctx, callerID, models.ResourceTypeFolder)
		if err != nil {
			return nil, err
		}
		filter := bson.M{
			"$text":      bson.M{"$search": params.Query},
			"trashed_at": nil,
			"$or":        scope,
		}

		cursor, err := s.folderCollection.Find(ctx, filter, findOpts)
		if err != nil {
			return nil, storeError("folder search", err)
		}
		var scored []scoredFolder
		if err := cursor.All(ctx, &scored); err != nil {
			return nil, storeError("folder search decode", err)
		}

		result.Folders = make([]models.Folder, 0, len(scored))
		for _, sf := range scored {
			result.Folders = append(result.Folders, sf.Folder)
		}
		result.HasMoreFolders = len(scored) == params.Limit
	}

	return result, nil
}

// visibilityScope builds the owner-or-grantee predicate for one kind.
func (s *SearchService) visibilityScope(ctx context.Context, callerID primitive.ObjectID, resourceType models.ResourceType) ([]bson.M, error) {
	grantedIDs, err := s.permissionService.grantedResourceIDs(ctx, callerID, resourceType)
	if err != nil {
		return nil, err
	}

	scope := []bson.M{{"owner_id": callerID}}
	if len(grantedIDs) > 0 {
		scope = append(scope, bson.M{"_id": bson.M{"$in": grantedIDs}})
	}
	return scope, nil
}

// AdvancedSearch filters the caller's own active files. Capped at
// advancedSearchLimit, single page, unordered.
func (s *SearchService) AdvancedSearch(ctx context.Context, callerID primitive.ObjectID, params AdvancedSearchParams) ([]models.File, error) {
	if params.Query == "" {
		return nil, fmt.Errorf("query cannot be empty: %w", utils.ErrInvalidArgument)
	}

	filter := bson.M{
		"$text":      bson.M{"$search": params.Query},
		"owner_id":   callerID,
		"trashed_at": nil,
	}

	if params.MimeType != "" {
		filter["mime_type"] = params.MimeType
	}

	sizeFilter := bson.M{}
	if params.MinSize != nil {
		sizeFilter["$gte"] = *params.MinSize
	}
	if params.MaxSize != nil {
		sizeFilter["$lte"] = *params.MaxSize
	}
	if len(sizeFilter) > 0 {
		filter["size"] = sizeFilter
	}

	createdFilter := bson.M{}
	if params.CreatedAfter != nil {
		createdFilter["$gte"] = *params.CreatedAfter
	}
	if params.CreatedBefore != nil {
		createdFilter["$lte"] = *params.CreatedBefore
	}
	if len(createdFilter) > 0 {
		filter["created_at"] = createdFilter
	}

	cursor, err := s.fileCollection.Find(ctx, filter,
		options.Find().SetLimit(advancedSearchLimit))
	if err != nil {
		return nil, storeError("advanced search", err)
	}

	files := []models.File{}
	if err := cursor.All(ctx, &files); err != nil {
		return nil, storeError("advanced search decode", err)
	}

	return files, nil
}

package service

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"blogapi/internal/models"
	"blogapi/internal/policy"
	"blogapi/internal/repository"
	"blogapi/internal/storage"
)

// nowFunc is swapped out in tests.
var nowFunc = time.Now

type CreatePostRequest struct {
	AuthorID    string
	Title       string
	Content     string
	IsDraft     bool
	PublishedAt *time.Time
}

// UpdatePostRequest carries a partial update. Nil field pointers mean
// "leave unchanged"; PublishedAtSet distinguishes clearing published_at
// from not touching it.
type UpdatePostRequest struct {
	PostID         string
	ActorID        string
	Title          *string
	Content        *string
	IsDraft        *bool
	PublishedAt    *time.Time
	PublishedAtSet bool
}

type PostService interface {
	CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error)
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	ListPosts(ctx context.Context, page int) ([]models.Post, int, error)
	UpdatePost(ctx context.Context, req UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, postID, actorID string) error
	AddImage(ctx context.Context, postID, actorID, fileName string, file io.Reader, size int64) (*models.Image, error)
	DeleteImage(ctx context.Context, postID, imageID, actorID string) error
}

type postService struct {
	postRepo  repository.PostRepository
	imageRepo repository.ImageRepository
	storage   storage.Storage
}

func NewPostService(postRepo repository.PostRepository, imageRepo repository.ImageRepository, storage storage.Storage) PostService {
	return &postService{
		postRepo:  postRepo,
		imageRepo: imageRepo,
		storage:   storage,
	}
}

func (p *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		AuthorID:    req.AuthorID,
		Title:       req.Title,
		Content:     req.Content,
		IsDraft:     req.IsDraft,
		PublishedAt: req.PublishedAt,
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	created, err := p.postRepo.GetByID(ctx, post.PostID)
	if err != nil {
		return nil, err
	}

	return created, nil
}

// GetPost is the public single-fetch path. Hidden posts are reported as
// not found so drafts and scheduled posts leak no existence signal.
// There is no ownership bypass: authors see their own drafts as 404 too.
func (p *postService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !policy.Visible(post, nowFunc()) {
		return nil, fmt.Errorf("post %s: %w", postID, repository.ErrNotFound)
	}

	images, err := p.imageRepo.GetByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	post.Images = images

	return post, nil
}

func (p *postService) ListPosts(ctx context.Context, page int) ([]models.Post, int, error) {
	return p.postRepo.ListVisible(ctx, nowFunc(), page, PageSize)
}

func (p *postService) UpdatePost(ctx context.Context, req UpdatePostRequest) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	if !policy.OwnedBy(post, req.ActorID) {
		return nil, fmt.Errorf("%w: post %s", ErrForbidden, req.PostID)
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.IsDraft != nil {
		post.IsDraft = *req.IsDraft
	}
	if req.PublishedAtSet {
		post.PublishedAt = req.PublishedAt
	}

	if err := p.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return p.postRepo.GetByID(ctx, req.PostID)
}

func (p *postService) DeletePost(ctx context.Context, postID, actorID string) error {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if !policy.OwnedBy(post, actorID) {
		return fmt.Errorf("%w: post %s", ErrForbidden, postID)
	}

	images, err := p.imageRepo.GetByPostID(ctx, postID)
	if err != nil {
		return err
	}

	// Image rows go before the post row, the stored objects last. A
	// failed object delete leaves an orphan in the bucket, nothing
	// worse.
	if err := p.imageRepo.DeleteByPostID(ctx, postID); err != nil {
		return err
	}

	if err := p.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	for _, image := range images {
		if objectName := objectNameFromURL(image.ImageURL); objectName != "" {
			_ = p.storage.DeleteImage(ctx, objectName)
		}
	}

	return nil
}

func (p *postService) AddImage(ctx context.Context, postID, actorID, fileName string, file io.Reader, size int64) (*models.Image, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !policy.OwnedBy(post, actorID) {
		return nil, fmt.Errorf("%w: post %s", ErrForbidden, postID)
	}

	objectName, imageURL, err := p.storage.UploadImage(ctx, postID, fileName, file, size)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	image := &models.Image{
		PostID:   postID,
		ImageURL: imageURL,
	}

	if err := p.imageRepo.Create(ctx, image); err != nil {
		_ = p.storage.DeleteImage(ctx, objectName)
		return nil, fmt.Errorf("failed to save image: %w", err)
	}

	return image, nil
}

func (p *postService) DeleteImage(ctx context.Context, postID, imageID, actorID string) error {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if !policy.OwnedBy(post, actorID) {
		return fmt.Errorf("%w: post %s", ErrForbidden, postID)
	}

	image, err := p.imageRepo.GetByImageID(ctx, imageID)
	if err != nil {
		return err
	}
	if image.PostID != postID {
		return fmt.Errorf("image %s: %w", imageID, repository.ErrNotFound)
	}

	if objectName := objectNameFromURL(image.ImageURL); objectName != "" {
		_ = p.storage.DeleteImage(ctx, objectName)
	}

	return p.imageRepo.Delete(ctx, imageID)
}

// objectNameFromURL recovers the MinIO object name from a stored image
// URL of the form scheme://endpoint/bucket/object...
func objectNameFromURL(imageURL string) string {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return ""
	}

	parts := strings.SplitN(strings.TrimPrefix(parsed.Path, "/"), "/", 2)
	if len(parts) < 2 {
		return ""
	}

	return parts[1]
}

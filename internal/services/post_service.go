package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmehl/goblog/internal/database"
	"github.com/jmehl/goblog/internal/models"
)

// PostServiceProvider defines the interface for post services.
type PostServiceProvider interface {
	List(ctx context.Context) ([]models.Post, error)
	Get(ctx context.Context, id int64, checkAuthor bool, userID int64) (models.Post, error)
	Create(ctx context.Context, title, body string, authorID int64) error
	Update(ctx context.Context, id int64, title, body string, userID int64) error
	Delete(ctx context.Context, id int64, userID int64) error
}

// PostService provides the blog CRUD operations.
type PostService struct {
	db *database.DB
}

// NewPostService creates a new PostService.
func NewPostService(db *database.DB) *PostService {
	return &PostService{db: db}
}

const postQuery = `
	SELECT p.id, p.title, p.body, p.created, p.author_id, u.username
	FROM post p JOIN user u ON p.author_id = u.id`

func scanPost(scanner interface{ Scan(...any) error }) (models.Post, error) {
	var p models.Post
	err := scanner.Scan(&p.ID, &p.Title, &p.Body, &p.Created, &p.AuthorID, &p.Username)
	return p, err
}

// List returns every post joined with its author's username, newest first.
func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	q, err := s.db.Querier(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, postQuery+" ORDER BY p.created DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// Get fetches a post by id. Existence is checked first: a missing id is
// ErrNotFound regardless of checkAuthor. With checkAuthor set, a post owned
// by someone other than userID is ErrForbidden.
func (s *PostService) Get(ctx context.Context, id int64, checkAuthor bool, userID int64) (models.Post, error) {
	q, err := s.db.Querier(ctx)
	if err != nil {
		return models.Post{}, err
	}

	p, err := scanPost(q.QueryRowContext(ctx, postQuery+" WHERE p.id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Post{}, fmt.Errorf("Post id %d doesn't exist: %w", id, ErrNotFound)
		}
		return models.Post{}, err
	}

	if checkAuthor && p.AuthorID != userID {
		return models.Post{}, ErrForbidden
	}
	return p, nil
}

// Create inserts a new post for authorID; created defaults to the current
// time in the store.
func (s *PostService) Create(ctx context.Context, title, body string, authorID int64) error {
	if title == "" {
		return &ValidationError{Message: "Title is required."}
	}

	q, err := s.db.Querier(ctx)
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx, "INSERT INTO post (title, body, author_id) VALUES (?, ?, ?)", title, body, authorID)
	return err
}

// Update changes a post's title and body in place; id, created and author
// are untouched. Only the post's author may update it.
func (s *PostService) Update(ctx context.Context, id int64, title, body string, userID int64) error {
	if _, err := s.Get(ctx, id, true, userID); err != nil {
		return err
	}
	if title == "" {
		return &ValidationError{Message: "Title is required."}
	}

	q, err := s.db.Querier(ctx)
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx, "UPDATE post SET title = ?, body = ? WHERE id = ?", title, body, id)
	return err
}

// Delete removes a post. Only the post's author may delete it.
func (s *PostService) Delete(ctx context.Context, id int64, userID int64) error {
	if _, err := s.Get(ctx, id, true, userID); err != nil {
		return err
	}

	q, err := s.db.Querier(ctx)
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx, "DELETE FROM post WHERE id = ?", id)
	return err
}

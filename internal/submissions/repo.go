package submissions

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"refgallery/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

type CreateInput struct {
	Title          string
	ImageURL       string
	SourceURL      string
	SourcePlatform string
	Credits        string
	Tags           []string
}

// Create inserts a pending submission and links the given tag names.
// Unknown tag names are skipped, not created; the taxonomy is fixed.
func (r *Repo) Create(ctx context.Context, in CreateInput) (*models.Submission, error) {
	sub := models.Submission{
		ID:             uuid.NewString(),
		Title:          in.Title,
		ImageURL:       in.ImageURL,
		SourceURL:      in.SourceURL,
		SourcePlatform: in.SourcePlatform,
		Credits:        in.Credits,
		Status:         models.StatusPending,
		CreatedAt:      time.Now().UTC(),
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO submissions (id, title, image_url, source_url, source_platform, credits, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, sub.ID, sub.Title, sub.ImageURL, sub.SourceURL, sub.SourcePlatform, sub.Credits, sub.Status, sub.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert submission: %w", err)
	}

	for _, name := range in.Tags {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		res, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO submission_tags (submission_id, tag_id)
			SELECT ?, id FROM tags WHERE name = ?
		`, sub.ID, name)
		if err != nil {
			return nil, fmt.Errorf("link tag %q: %w", name, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			sub.Tags = append(sub.Tags, name)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return &sub, nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, title, image_url, source_url, source_platform, credits, status, rejection_reason, created_at
		FROM submissions
		WHERE id = ?
	`, id)

	sub, err := scanSubmission(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan submission: %w", err)
	}

	tags, err := r.TagsFor(ctx, sub.ID)
	if err != nil {
		return nil, err
	}
	sub.Tags = tags
	return sub, nil
}

// FindApproved returns approved submissions whose title contains
// titleQuery (case-insensitive), newest first. An empty query matches
// everything. Tags are not populated; use TagsFor.
func (r *Repo) FindApproved(ctx context.Context, titleQuery string, offset, limit int) ([]models.Submission, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	sqlStr := `
		SELECT id, title, image_url, source_url, source_platform, credits, status, rejection_reason, created_at
		FROM submissions
		WHERE status = ?
	`
	args := []any{models.StatusApproved}

	if strings.TrimSpace(titleQuery) != "" {
		sqlStr += " AND LOWER(title) LIKE ?"
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(titleQuery))+"%")
	}

	sqlStr += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	return r.querySubmissions(ctx, sqlStr, args...)
}

// TagsFor returns the tag names linked to a submission, in association
// insertion order (not alphabetized).
func (r *Repo) TagsFor(ctx context.Context, submissionID string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT t.name
		FROM submission_tags st
		JOIN tags t ON t.id = st.tag_id
		WHERE st.submission_id = ?
		ORDER BY st.rowid
	`, submissionID)
	if err != nil {
		return nil, fmt.Errorf("tags query: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("tags scan: %w", err)
		}
		tags = append(tags, name)
	}
	return tags, rows.Err()
}

// ListPending returns pending submissions, oldest first, for moderation.
func (r *Repo) ListPending(ctx context.Context) ([]models.Submission, error) {
	return r.querySubmissions(ctx, `
		SELECT id, title, image_url, source_url, source_platform, credits, status, rejection_reason, created_at
		FROM submissions
		WHERE status = ?
		ORDER BY created_at ASC
	`, models.StatusPending)
}

// SetStatus moves a submission to the given status. The reason is only
// stored for rejections.
func (r *Repo) SetStatus(ctx context.Context, id, status, reason string) (bool, error) {
	if status != models.StatusRejected {
		reason = ""
	}
	res, err := r.DB.ExecContext(ctx, `
		UPDATE submissions SET status = ?, rejection_reason = ? WHERE id = ?
	`, status, reason, id)
	if err != nil {
		return false, fmt.Errorf("update status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

type Stats struct {
	Approved int `json:"approved_submissions"`
	Pending  int `json:"pending_submissions"`
	Rejected int `json:"rejected_submissions"`
}

func (r *Repo) CountByStatus(ctx context.Context) (Stats, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT status, COUNT(*) FROM submissions GROUP BY status`)
	if err != nil {
		return Stats{}, fmt.Errorf("stats query: %w", err)
	}
	defer rows.Close()

	var s Stats
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return Stats{}, fmt.Errorf("stats scan: %w", err)
		}
		switch status {
		case models.StatusApproved:
			s.Approved = count
		case models.StatusPending:
			s.Pending = count
		case models.StatusRejected:
			s.Rejected = count
		}
	}
	return s, rows.Err()
}

// ImageRef is the slice of a submission the dead-link checker needs.
type ImageRef struct {
	ID       string
	ImageURL string
}

func (r *Repo) ApprovedImageRefs(ctx context.Context) ([]ImageRef, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, image_url FROM submissions WHERE status = ?
	`, models.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("image refs query: %w", err)
	}
	defer rows.Close()

	var refs []ImageRef
	for rows.Next() {
		var ref ImageRef
		if err := rows.Scan(&ref.ID, &ref.ImageURL); err != nil {
			return nil, fmt.Errorf("image refs scan: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (*models.Submission, error) {
	var (
		sub       models.Submission
		sourceURL sql.NullString
		platform  sql.NullString
		credits   sql.NullString
		reason    sql.NullString
	)
	if err := row.Scan(
		&sub.ID, &sub.Title, &sub.ImageURL, &sourceURL, &platform, &credits,
		&sub.Status, &reason, &sub.CreatedAt,
	); err != nil {
		return nil, err
	}
	sub.SourceURL = sourceURL.String
	sub.SourcePlatform = platform.String
	sub.Credits = credits.String
	sub.RejectionReason = reason.String
	return &sub, nil
}

func (r *Repo) querySubmissions(ctx context.Context, sqlStr string, args ...any) ([]models.Submission, error) {
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("submissions query: %w", err)
	}
	defer rows.Close()

	out := make([]models.Submission, 0, 8)
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("submissions scan: %w", err)
		}
		out = append(out, *sub)
	}
	return out, rows.Err()
}

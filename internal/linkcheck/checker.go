package linkcheck

import (
	"context"
	"log"
	"net/http"
	"time"

	"refgallery/internal/submissions"
	"refgallery/pkg/models"
)

const rejectReason = "Image URL no longer accessible"

// Checker probes approved submissions' image URLs and rejects the ones
// that no longer resolve. Meant to run as a scheduled job.
type Checker struct {
	Repo   *submissions.Repo
	Client *http.Client
}

func New(repo *submissions.Repo, timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Checker{
		Repo:   repo,
		Client: &http.Client{Timeout: timeout},
	}
}

// Run checks every approved submission once and returns how many dead
// links were found.
func (c *Checker) Run(ctx context.Context) (int, error) {
	refs, err := c.Repo.ApprovedImageRefs(ctx)
	if err != nil {
		return 0, err
	}
	log.Printf("[linkcheck] checking %d submissions", len(refs))

	dead := 0
	for _, ref := range refs {
		if c.alive(ctx, ref.ImageURL) {
			continue
		}
		dead++
		log.Printf("[linkcheck] dead link: %s - %s", ref.ID, ref.ImageURL)
		if _, err := c.Repo.SetStatus(ctx, ref.ID, models.StatusRejected, rejectReason); err != nil {
			log.Printf("[linkcheck] reject %s: %v", ref.ID, err)
		}
	}
	return dead, nil
}

func (c *Checker) alive(ctx context.Context, rawURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return false
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode <= 299
}

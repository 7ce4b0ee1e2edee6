package views

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/portaladmin/internal/app/editor"
	"github.com/yigit/portaladmin/internal/app/loader"
	"github.com/yigit/portaladmin/internal/app/models"
	"github.com/yigit/portaladmin/internal/app/services"
	"github.com/yigit/portaladmin/internal/app/workspace"
	"github.com/yigit/portaladmin/internal/middleware"
	"github.com/yigit/portaladmin/internal/pkg/apperrors"
)

// ViewController serves the HTML dashboard. Reads and writes of a logged-in
// operator go through the workspace of their session.
type ViewController struct {
	svc    *services.Services
	auth   *middleware.AuthMiddleware
	logger zerolog.Logger
}

// NewViewController creates a new ViewController
func NewViewController(svc *services.Services, auth *middleware.AuthMiddleware, logger zerolog.Logger) *ViewController {
	return &ViewController{svc: svc, auth: auth, logger: logger}
}

// workspaceOf returns the workspace of the session attached by PageAuth.
func workspaceOf(c *gin.Context) *workspace.Workspace {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		return nil
	}
	return s.Workspace
}

// page builds the shared page header and consumes the pending flash.
func (v *ViewController) page(c *gin.Context, title, active string) Page {
	p := Page{Title: title, Active: active}
	if s, ok := middleware.CurrentSession(c); ok {
		p.Identity = s.Identity
		if s.Workspace != nil {
			p.Flash = s.Workspace.TakeFlash()
		}
	}
	return p
}

// fail renders the error page for err.
func (v *ViewController) fail(c *gin.Context, p Page, err error, back string) {
	status, detail := middleware.ErrorStatus(err)
	p.Error = detail.Message
	c.HTML(status, "error.html", errorPage{Page: p, Back: back})
}

// redirect ends a successful form post.
func redirect(c *gin.Context, to string) {
	c.Redirect(http.StatusSeeOther, to)
}

// load runs a view-entry fetch. A load superseded by a newer one renders
// whatever the loader holds now.
func load[T any](ctx context.Context, l *loader.Loader[T]) ([]T, error) {
	items, err := l.Load(ctx)
	if errors.Is(err, loader.ErrSuperseded) {
		snap := l.Snapshot()
		return snap.Items, snap.Err
	}
	return items, err
}

// ensureOpen keeps the open draft when it is the record being posted and
// otherwise opens a fresh one, so a form posted from a second tab still
// saves what it shows.
func ensureOpen[D models.Draft[D]](ed *editor.Editor[D], id string, blank func() D) {
	if d, ok := ed.Current(); ok && d.RecordID() == id {
		return
	}
	ed.Open(blank())
}

// finishMutation handles the outcome of a save or delete. Success and a
// failed refresh both redirect with a flash; the write already happened.
// Any other error is returned for the caller to re-render its form.
func (v *ViewController) finishMutation(c *gin.Context, err error, to, done string) error {
	w := workspaceOf(c)
	switch {
	case err == nil:
		w.SetFlash(done)
	case errors.Is(err, apperrors.ErrReloadFailed):
		v.logger.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("Reload after mutation failed")
		w.SetFlash(apperrors.ErrReloadFailed.Error())
	case errors.Is(err, apperrors.ErrMutationFailed):
		v.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Mutation failed")
		return err
	default:
		v.logger.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Mutation rejected")
		return err
	}
	redirect(c, to)
	return nil
}

// formError sets the page error for a rejected save and returns the status.
func formError(p *Page, err error) int {
	status, detail := middleware.ErrorStatus(err)
	p.Error = detail.Message
	return status
}

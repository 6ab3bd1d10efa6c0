package httpadapter

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"svw.info/gridsolve/internal/domain"
	"svw.info/gridsolve/internal/grid"
	"svw.info/gridsolve/internal/solver"
	"svw.info/gridsolve/internal/usecase"
	"svw.info/gridsolve/internal/validator"
)

type Handler struct {
	UC *usecase.Service
}

func New(uc *usecase.Service) *Handler { return &Handler{UC: uc} }

// Register mounts the JSON API under /api/v1.
func (h *Handler) Register(e *gin.Engine) {
	v1 := e.Group("/api").Group("/v1")
	v1.POST("/solve", h.handleSolve)
	v1.POST("/unique", h.handleUnique)
	v1.POST("/validate", h.handleValidate)
	v1.POST("/hint", h.handleHint)
	v1.POST("/puzzles", h.handleSave)
	v1.GET("/puzzles", h.handleList)
	v1.GET("/puzzles/:id", h.handleLoad)
}

// boardReq accepts either a full cell matrix or a list of (row,col,value)
// givens, and normalizes geometry defaults: a bare 9×9 matrix is accepted
// without explicit size fields.
type boardReq struct {
	Size    int            `json:"size,omitempty"`
	BoxSide int            `json:"boxSide,omitempty"`
	Cells   [][]int        `json:"cells,omitempty"`
	Givens  []domain.Given `json:"givens,omitempty"`
}

func (r *boardReq) board() (*domain.Board, error) {
	size, boxSide := r.Size, r.BoxSide
	if size == 0 {
		size = len(r.Cells)
	}
	if boxSide == 0 && size == 9 {
		boxSide = 3
	}
	if len(r.Cells) == 0 && len(r.Givens) > 0 {
		return domain.BoardFromGivens(size, boxSide, r.Givens)
	}
	return &domain.Board{Size: size, BoxSide: boxSide, Cells: r.Cells}, nil
}

// ---- Solve ----

type solveResp struct {
	Board      *domain.Board `json:"board,omitempty"`
	DurationMs int64         `json:"durationMs"`
	Nodes      int           `json:"nodes"`
	Error      string        `json:"error,omitempty"`
}

func (h *Handler) handleSolve(c *gin.Context) {
	var req boardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Err(err).Msg("decode solve request")
		c.JSON(http.StatusBadRequest, solveResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	b, err := req.board()
	if err != nil {
		c.JSON(http.StatusBadRequest, solveResp{Error: err.Error()})
		return
	}
	out, st, err := h.UC.Solve(c.Request.Context(), b)
	if err != nil {
		c.JSON(statusFor(err), solveResp{
			Error:      err.Error(),
			DurationMs: st.Duration.Milliseconds(),
			Nodes:      st.Nodes,
		})
		return
	}
	c.JSON(http.StatusOK, solveResp{
		Board:      out,
		DurationMs: st.Duration.Milliseconds(),
		Nodes:      st.Nodes,
	})
}

// statusFor maps the solver's error taxonomy onto HTTP statuses.
// NoSolution is a normal outcome of a well-formed request, reported as
// 422 rather than a server error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, solver.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, solver.ErrNoSolution):
		return http.StatusUnprocessableEntity
	case errors.Is(err, solver.ErrSearchAborted):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

// ---- Unique ----

type uniqueResp struct {
	Unique bool   `json:"unique"`
	Nodes  int    `json:"nodes"`
	Error  string `json:"error,omitempty"`
}

func (h *Handler) handleUnique(c *gin.Context) {
	var req boardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, uniqueResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	b, err := req.board()
	if err != nil {
		c.JSON(http.StatusBadRequest, uniqueResp{Error: err.Error()})
		return
	}
	ok, st, err := h.UC.Unique(c.Request.Context(), b)
	if err != nil {
		c.JSON(statusFor(err), uniqueResp{Error: err.Error(), Nodes: st.Nodes})
		return
	}
	c.JSON(http.StatusOK, uniqueResp{Unique: ok, Nodes: st.Nodes})
}

// ---- Validate ----

type validateResp struct {
	OK        bool               `json:"ok"`
	Conflicts []domain.CellCoord `json:"conflicts,omitempty"`
	Error     string             `json:"error,omitempty"`
}

func (h *Handler) handleValidate(c *gin.Context) {
	var req boardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validateResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	b, err := req.board()
	if err != nil {
		c.JSON(http.StatusBadRequest, validateResp{Error: err.Error()})
		return
	}
	ok, conflicts, err := h.UC.Validate(c.Request.Context(), b)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, validator.ErrMalformedBoard) {
			status = http.StatusBadRequest
		}
		c.JSON(status, validateResp{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, validateResp{OK: ok, Conflicts: conflicts})
}

// ---- Hint ----

type hintReq struct {
	boardReq
	MaxTier string `json:"maxTier,omitempty"`
}

type hintResp struct {
	Found bool        `json:"found"`
	Hint  domain.Hint `json:"hint,omitempty"`
	Error string      `json:"error,omitempty"`
}

func parseTier(s string) domain.StrategyTier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pairs":
		return domain.StrategyPairs
	case "advanced":
		return domain.StrategyAdvanced
	default:
		return domain.StrategySingles
	}
}

func (h *Handler) handleHint(c *gin.Context) {
	var req hintReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, hintResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	b, err := req.board()
	if err != nil {
		c.JSON(http.StatusBadRequest, hintResp{Error: err.Error()})
		return
	}
	hh, ok, err := h.UC.Hint(c.Request.Context(), b, parseTier(req.MaxTier))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, grid.ErrInvalidSize) || errors.Is(err, grid.ErrOutOfRange) {
			status = http.StatusBadRequest
		}
		c.JSON(status, hintResp{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, hintResp{Found: ok, Hint: hh})
}

// ---- Save / Load / List ----

type saveResp struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

func (h *Handler) handleSave(c *gin.Context) {
	var p domain.Puzzle
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, saveResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	if p.CreatedAt == 0 {
		p.CreatedAt = time.Now().UnixNano()
	}
	if err := h.UC.Save(c.Request.Context(), &p); err != nil {
		log.Err(err).Msg("save puzzle")
		c.JSON(http.StatusInternalServerError, saveResp{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, saveResp{ID: p.ID})
}

type loadResp struct {
	Puzzle *domain.Puzzle `json:"puzzle,omitempty"`
	Error  string         `json:"error,omitempty"`
}

func (h *Handler) handleLoad(c *gin.Context) {
	id := c.Param("id")
	p, err := h.UC.Load(c.Request.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, os.ErrNotExist) {
			status = http.StatusNotFound
		}
		c.JSON(status, loadResp{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, loadResp{Puzzle: p})
}

type listResp struct {
	Puzzles []domain.PuzzleMeta `json:"puzzles"`
	Error   string              `json:"error,omitempty"`
}

func (h *Handler) handleList(c *gin.Context) {
	ps, err := h.UC.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, listResp{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, listResp{Puzzles: ps})
}

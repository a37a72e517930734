package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Dosada05/match-tagger/models"
	"github.com/Dosada05/match-tagger/stats"
	"github.com/Dosada05/match-tagger/storage"
	"golang.org/x/sync/errgroup"
)

const (
	heatCellSize   = 64
	heatCellGap    = 4
	heatCellBorder = 3
)

var heatBackground = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

type ExportResult struct {
	Text  *storage.UploadResult `json:"text"`
	Image *storage.UploadResult `json:"image"`
}

// ExportService renders archived games to text and PNG and stores them through a FileUploader.
type ExportService struct {
	session  *Session
	uploader storage.FileUploader
	logger   *slog.Logger
}

func NewExportService(session *Session, uploader storage.FileUploader, logger *slog.Logger) *ExportService {
	return &ExportService{session: session, uploader: uploader, logger: logger}
}

// FileStem builds "stats_<A>_vs_<B>" with whitespace replaced by underscores.
func FileStem(game *models.SavedGame) string {
	underscore := func(name string) string {
		return strings.Join(strings.Fields(name), "_")
	}
	return fmt.Sprintf("stats_%s_vs_%s", underscore(game.TeamA.Name), underscore(game.TeamB.Name))
}

// TextSummary renders the plain-text statistics sheet. Per-action lines follow catalog order
// and skip actions nobody performed.
func TextSummary(game *models.SavedGame, st models.GameStats, catalog []models.ActionType) string {
	a, b := game.TeamA.Name, game.TeamB.Name

	var sb strings.Builder
	fmt.Fprintf(&sb, "MATCH STATISTICS\n%s vs %s\n\n", a, b)
	fmt.Fprintf(&sb, "POSSESSION\n%s: %d%%\n%s: %d%%\n\n", a, st.Possession.TeamA, b, st.Possession.TeamB)
	fmt.Fprintf(&sb, "TOTAL ACTIONS\n%s: %d\n%s: %d\n\n", a, st.Actions.TeamA, b, st.Actions.TeamB)
	sb.WriteString("SPECIFIC ACTIONS\n")

	seen := make(map[string]bool, len(catalog))
	for _, at := range catalog {
		if seen[at.Name] {
			continue
		}
		seen[at.Name] = true
		counts, ok := st.SpecificActions[at.Name]
		if !ok || (counts.TeamA == 0 && counts.TeamB == 0) {
			continue
		}
		fmt.Fprintf(&sb, "%s: %s %d x %d %s\n", at.Name, a, counts.TeamA, counts.TeamB, b)
	}
	return sb.String()
}

// HeatMapPNG draws the combined 5x5 grid. Cells are filled with their level colour; cells with
// entries get a border in the dominant team's primary colour.
func HeatMapPNG(hm models.HeatMap, teamA, teamB *models.Team) ([]byte, error) {
	side := models.GridSize*heatCellSize + (models.GridSize+1)*heatCellGap
	img := image.NewNRGBA(image.Rect(0, 0, side, side))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: heatBackground}, image.Point{}, draw.Src)

	for row := 0; row < models.GridSize; row++ {
		for col := 0; col < models.GridSize; col++ {
			cell := hm.Cells[row][col]
			x0 := heatCellGap + col*(heatCellSize+heatCellGap)
			y0 := heatCellGap + row*(heatCellSize+heatCellGap)
			rect := image.Rect(x0, y0, x0+heatCellSize, y0+heatCellSize)

			if cell.Total > 0 {
				border := parseHexColor(teamA.Colors.Primary)
				if cell.Dominant == teamB.ID {
					border = parseHexColor(teamB.Colors.Primary)
				}
				draw.Draw(img, rect, &image.Uniform{C: border}, image.Point{}, draw.Src)
				rect = rect.Inset(heatCellBorder)
			}
			draw.Draw(img, rect, &image.Uniform{C: stats.LevelColor(cell.Level)}, image.Point{}, draw.Over)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode heat map: %w", err)
	}
	return buf.Bytes(), nil
}

// Render returns the text summary and PNG for an archived game.
func (s *ExportService) Render(gameID string) (*models.SavedGame, string, []byte, error) {
	report, err := s.session.GameReport(gameID)
	if err != nil {
		return nil, "", nil, err
	}

	text := TextSummary(report.Game, report.Stats, report.Catalog)
	pngData, err := HeatMapPNG(report.HeatMaps.Combined, report.Game.TeamA, report.Game.TeamB)
	if err != nil {
		return nil, "", nil, err
	}
	return report.Game, text, pngData, nil
}

// ExportGame uploads both renderings in parallel.
func (s *ExportService) ExportGame(ctx context.Context, gameID string) (*ExportResult, error) {
	game, text, pngData, err := s.Render(gameID)
	if err != nil {
		return nil, err
	}
	stem := game.ID + "/" + FileStem(game)

	result := &ExportResult{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := s.uploader.Upload(gctx, stem+".txt", "text/plain; charset=utf-8", strings.NewReader(text))
		if err != nil {
			return fmt.Errorf("text summary: %w", err)
		}
		result.Text = res
		return nil
	})
	g.Go(func() error {
		res, err := s.uploader.Upload(gctx, stem+".png", "image/png", bytes.NewReader(pngData))
		if err != nil {
			return fmt.Errorf("heat map image: %w", err)
		}
		result.Image = res
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("game export failed", slog.String("game_id", gameID), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	s.logger.Info("game exported", slog.String("game_id", gameID),
		slog.String("text", result.Text.Location), slog.String("image", result.Image.Location))
	return result, nil
}

// parseHexColor accepts "#RRGGBB"; anything else falls back to black.
func parseHexColor(hex string) color.NRGBA {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return color.NRGBA{A: 255}
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{A: 255}
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

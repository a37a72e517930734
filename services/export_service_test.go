package services

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/Dosada05/match-tagger/models"
	"github.com/Dosada05/match-tagger/stats"
	"github.com/Dosada05/match-tagger/storage"
)

type memoryUploader struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	fail    string // key suffix that fails
}

func newMemoryUploader() *memoryUploader {
	return &memoryUploader{objects: map[string][]byte{}, types: map[string]string{}}
}

func (u *memoryUploader) Upload(ctx context.Context, key, contentType string, r io.Reader) (*storage.UploadResult, error) {
	if u.fail != "" && strings.HasSuffix(key, u.fail) {
		return nil, errors.New("bucket unavailable")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.objects[key] = data
	u.types[key] = contentType
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *memoryUploader) Delete(ctx context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.objects, key)
	return nil
}

func (u *memoryUploader) GetPublicURL(key string) string { return "https://cdn.test/" + key }

func archivedGame(t *testing.T, s *Session) *models.SavedGame {
	t.Helper()
	startLive(t, s)
	_, _ = s.RecordZoneTap(models.Zone{Row: 0, Col: 0})
	_, _ = s.RecordZoneTap(models.Zone{Row: 0, Col: 0})
	if _, err := s.RecordSpecificAction("3", str("a9"), models.Zone{Row: 1, Col: 1}); err != nil {
		t.Fatalf("RecordSpecificAction: %v", err)
	}
	_ = s.SetPossession("b")
	_, _ = s.RecordZoneTap(models.Zone{Row: 4, Col: 4})
	game, err := s.EndMatch(context.Background())
	if err != nil {
		t.Fatalf("EndMatch: %v", err)
	}
	return game
}

func TestFileStem(t *testing.T) {
	game := &models.SavedGame{
		TeamA: &models.Team{Name: "Alpha  FC"},
		TeamB: &models.Team{Name: "Beta\tUnited"},
	}
	if got := FileStem(game); got != "stats_Alpha_FC_vs_Beta_United" {
		t.Fatalf("FileStem = %q", got)
	}
}

func TestTextSummary(t *testing.T) {
	s, _, _ := newTestSession(t)
	game := archivedGame(t, s)
	st, _ := s.GameStats(game.ID)

	got := TextSummary(game, st, s.ListActionTypes())
	want := `MATCH STATISTICS
Alpha FC vs Beta United

POSSESSION
Alpha FC: 60%
Beta United: 40%

TOTAL ACTIONS
Alpha FC: 3
Beta United: 2

SPECIFIC ACTIONS
Falta Cometida: Alpha FC 1 x 0 Beta United
Falta Sofrida: Alpha FC 0 x 1 Beta United
`
	if got != want {
		t.Fatalf("TextSummary mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestHeatMapPNG(t *testing.T) {
	a, b := testTeams()
	actions := []models.GameAction{
		{Type: models.ActionKindPossession, TeamID: "b", Zone: models.Zone{Row: 0, Col: 0}},
	}
	data, err := HeatMapPNG(stats.HeatMap(actions, a, b), a, b)
	if err != nil {
		t.Fatalf("HeatMapPNG: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	side := models.GridSize*heatCellSize + (models.GridSize+1)*heatCellGap
	if img.Bounds().Dx() != side || img.Bounds().Dy() != side {
		t.Fatalf("image is %v, want %dx%d", img.Bounds(), side, side)
	}

	// border of cell (0,0) takes team B's primary colour
	r, g, bl, _ := img.At(heatCellGap, heatCellGap).RGBA()
	if r>>8 != 0 || g>>8 != 0 || bl>>8 != 255 {
		t.Errorf("border pixel = %d,%d,%d, want team B blue", r>>8, g>>8, bl>>8)
	}
	// empty cell keeps the white background under a faint placeholder
	r, g, bl, _ = img.At(heatCellGap+heatCellSize+heatCellGap+heatCellSize/2, heatCellGap+heatCellSize/2).RGBA()
	if r>>8 != 255 || g>>8 != 255 || bl>>8 == 255 {
		t.Errorf("empty cell pixel = %d,%d,%d, want tinted yellow", r>>8, g>>8, bl>>8)
	}
}

func TestParseHexColor(t *testing.T) {
	if c := parseHexColor("#3B82F6"); c.R != 0x3B || c.G != 0x82 || c.B != 0xF6 || c.A != 255 {
		t.Errorf("parseHexColor = %+v", c)
	}
	if c := parseHexColor("blue"); c.R != 0 || c.G != 0 || c.B != 0 || c.A != 255 {
		t.Errorf("invalid colour = %+v, want opaque black", c)
	}
}

func TestGameReportReadsOneState(t *testing.T) {
	s, _, _ := newTestSession(t)
	game := archivedGame(t, s)

	if _, err := s.GameReport("missing"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("GameReport(missing) = %v", err)
	}

	report, err := s.GameReport(game.ID)
	if err != nil {
		t.Fatalf("GameReport: %v", err)
	}
	if report.Game.ID != game.ID || len(report.Game.Actions) != 5 {
		t.Fatalf("report game = %+v", report.Game)
	}
	if report.Stats.Possession.TeamA != 60 || report.Stats.Actions.TeamB != 2 {
		t.Errorf("report stats = %+v", report.Stats)
	}
	if report.HeatMaps.Combined.Cells[0][0].TeamA != 2 || report.HeatMaps.Combined.Cells[4][4].TeamB != 1 {
		t.Errorf("report heat map = %+v", report.HeatMaps.Combined)
	}
	if len(report.Catalog) != 14 {
		t.Errorf("report catalog has %d entries", len(report.Catalog))
	}

	// the report is a copy; later edits do not leak into it
	if _, _, err := s.DeleteAction(context.Background(), game.ID, game.Actions[0].ID); err != nil {
		t.Fatalf("DeleteAction: %v", err)
	}
	if len(report.Game.Actions) != 5 {
		t.Fatal("report changed after archive edit")
	}
}

func TestExportGameUploadsBoth(t *testing.T) {
	s, _, _ := newTestSession(t)
	game := archivedGame(t, s)
	up := newMemoryUploader()
	svc := NewExportService(s, up, discardLogger())

	res, err := svc.ExportGame(context.Background(), game.ID)
	if err != nil {
		t.Fatalf("ExportGame: %v", err)
	}
	stem := game.ID + "/stats_Alpha_FC_vs_Beta_United"
	if res.Text.Key != stem+".txt" || res.Image.Key != stem+".png" {
		t.Fatalf("keys = %s, %s", res.Text.Key, res.Image.Key)
	}
	if up.types[stem+".png"] != "image/png" || !bytes.HasPrefix(up.objects[stem+".png"], []byte("\x89PNG")) {
		t.Error("png object not stored")
	}
	if !strings.Contains(string(up.objects[stem+".txt"]), "Alpha FC: 60%") {
		t.Error("text summary not stored")
	}
}

func TestExportGameErrors(t *testing.T) {
	s, _, _ := newTestSession(t)
	game := archivedGame(t, s)

	up := newMemoryUploader()
	if _, err := NewExportService(s, up, discardLogger()).ExportGame(context.Background(), "missing"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("unknown game = %v", err)
	}

	up.fail = ".png"
	if _, err := NewExportService(s, up, discardLogger()).ExportGame(context.Background(), game.ID); !errors.Is(err, ErrExportFailed) {
		t.Fatalf("failed upload = %v, want ErrExportFailed", err)
	}
}

package diseases

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"agroadvisor-backend/internal/apperr"
	"agroadvisor-backend/internal/inference"
)

type stubImageClassifier struct {
	info    inference.ImageModelInfo
	scores  []float64
	infoErr error
	predErr error
}

func (s stubImageClassifier) Info(ctx context.Context) (inference.ImageModelInfo, error) {
	return s.info, s.infoErr
}

func (s stubImageClassifier) Predict(ctx context.Context, pixels []float32, width, height int) ([]float64, error) {
	if s.predErr != nil {
		return nil, s.predErr
	}
	return s.scores, nil
}

type recordingStore struct {
	objects []string
	removed []string
	err     error
}

func (s *recordingStore) Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.objects = append(s.objects, objectName)
	return objectName, nil
}

func (s *recordingStore) PresignedURL(ctx context.Context, objectName string) (string, error) {
	return "http://example.test/" + objectName, nil
}

func (s *recordingStore) Remove(ctx context.Context, objectName string) error {
	s.removed = append(s.removed, objectName)
	return nil
}

// failingRepo rejects every insert; listing stays empty.
type failingRepo struct{}

func (failingRepo) Insert(ctx context.Context, rec Record) error {
	return errors.New("connection reset")
}

func (failingRepo) ListByUsername(ctx context.Context, username string, limit int) ([]Record, error) {
	return nil, nil
}

func leafPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 30, G: 160, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func scoresWithPeak(n, peak int, value float64) []float64 {
	scores := make([]float64, n)
	rest := (1 - value) / float64(n-1)
	for i := range scores {
		scores[i] = rest
	}
	scores[peak] = value
	return scores
}

func TestDetectLateBlightHighSeverity(t *testing.T) {
	// Index 30 is Tomato___Late_blight.
	classifier := stubImageClassifier{
		info:   inference.ImageModelInfo{InputSize: 8, Classes: 38},
		scores: scoresWithPeak(38, 30, 0.9),
	}
	svc := NewService(classifier, nil, nil)

	detection, err := svc.Detect(context.Background(), "", "leaf.png", leafPNG(t))
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if detection.Disease != "Late blight" {
		t.Fatalf("expected Late blight, got %q", detection.Disease)
	}
	if detection.AffectedPlant != "Tomato" {
		t.Fatalf("expected Tomato, got %q", detection.AffectedPlant)
	}
	if detection.Severity != "High" {
		t.Fatalf("expected High severity, got %q", detection.Severity)
	}
	if detection.Confidence != 0.9 {
		t.Fatalf("expected confidence 0.9, got %f", detection.Confidence)
	}
}

func TestDetectHealthyLeafNoSeverity(t *testing.T) {
	// Index 3 is Apple___healthy.
	classifier := stubImageClassifier{
		info:   inference.ImageModelInfo{InputSize: 8, Classes: 38},
		scores: scoresWithPeak(38, 3, 0.95),
	}
	svc := NewService(classifier, nil, nil)

	detection, err := svc.Detect(context.Background(), "", "leaf.png", leafPNG(t))
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if detection.Severity != "None" {
		t.Fatalf("expected None severity, got %q", detection.Severity)
	}
}

func TestDetectRejectsInvalidImage(t *testing.T) {
	classifier := stubImageClassifier{
		info: inference.ImageModelInfo{InputSize: 8, Classes: 38},
	}
	svc := NewService(classifier, nil, nil)

	_, err := svc.Detect(context.Background(), "", "notes.txt", []byte("definitely not an image"))
	if !errors.Is(err, apperr.ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage, got %v", err)
	}
}

func TestDetectPropagatesUnavailableModel(t *testing.T) {
	svc := NewService(inference.PlaceholderImage{}, nil, nil)

	_, err := svc.Detect(context.Background(), "", "leaf.png", leafPNG(t))
	if !errors.Is(err, apperr.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestDetectPaddedClassResolvesGenerically(t *testing.T) {
	// Model reports more classes than the taxonomy; the padded entry wins.
	classifier := stubImageClassifier{
		info:   inference.ImageModelInfo{InputSize: 8, Classes: 40},
		scores: scoresWithPeak(40, 39, 0.9),
	}
	svc := NewService(classifier, nil, nil)

	detection, err := svc.Detect(context.Background(), "", "leaf.png", leafPNG(t))
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if detection.Disease != "Disease_Class_39" {
		t.Fatalf("expected generic class name, got %q", detection.Disease)
	}
	if detection.AffectedPlant != "Plant" {
		t.Fatalf("expected Plant host, got %q", detection.AffectedPlant)
	}
}

func TestDetectRejectsEmptyScoreVector(t *testing.T) {
	classifier := stubImageClassifier{
		info:   inference.ImageModelInfo{InputSize: 8, Classes: 38},
		scores: []float64{},
	}
	svc := NewService(classifier, nil, nil)

	_, err := svc.Detect(context.Background(), "", "leaf.png", leafPNG(t))
	if !errors.Is(err, apperr.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestTaxonomyAlignmentIsStableAcrossRequests(t *testing.T) {
	classifier := &stubImageClassifier{
		info:   inference.ImageModelInfo{InputSize: 8, Classes: 40},
		scores: scoresWithPeak(40, 39, 0.9),
	}
	svc := NewService(classifier, nil, nil)

	if _, err := svc.Detect(context.Background(), "", "leaf.png", leafPNG(t)); err != nil {
		t.Fatalf("Detect: %v", err)
	}

	// A later, narrower width report must not re-align the cached taxonomy.
	classifier.info.Classes = 38
	detection, err := svc.Detect(context.Background(), "", "leaf.png", leafPNG(t))
	if err != nil {
		t.Fatalf("Detect after width change: %v", err)
	}
	if detection.Disease != "Disease_Class_39" {
		t.Fatalf("expected cached padded class, got %q", detection.Disease)
	}
}

func TestDetectArchivesAndRecordsHistory(t *testing.T) {
	classifier := stubImageClassifier{
		info:   inference.ImageModelInfo{InputSize: 8, Classes: 38},
		scores: scoresWithPeak(38, 30, 0.9),
	}
	repo := NewMemoryRepo()
	store := &recordingStore{}
	svc := NewService(classifier, repo, store)

	if _, err := svc.Detect(context.Background(), "ramesh", "leaf.png", leafPNG(t)); err != nil {
		t.Fatalf("Detect: %v", err)
	}

	if len(store.objects) != 1 {
		t.Fatalf("expected 1 archived object, got %d", len(store.objects))
	}
	records, err := repo.ListByUsername(context.Background(), "ramesh", 10)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(records))
	}
	if records[0].ImageObject != store.objects[0] {
		t.Fatalf("history should reference the archived object")
	}
}

func TestHistoryAttachesDownloadLinks(t *testing.T) {
	classifier := stubImageClassifier{
		info:   inference.ImageModelInfo{InputSize: 8, Classes: 38},
		scores: scoresWithPeak(38, 30, 0.9),
	}
	repo := NewMemoryRepo()
	store := &recordingStore{}
	svc := NewService(classifier, repo, store)

	if _, err := svc.Detect(context.Background(), "ramesh", "leaf.png", leafPNG(t)); err != nil {
		t.Fatalf("Detect: %v", err)
	}

	records, err := svc.History(context.Background(), "ramesh", 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	want := "http://example.test/" + records[0].ImageObject
	if records[0].ImageURL != want {
		t.Fatalf("image url = %q, want %q", records[0].ImageURL, want)
	}
}

func TestFailedHistoryInsertRemovesArchivedObject(t *testing.T) {
	classifier := stubImageClassifier{
		info:   inference.ImageModelInfo{InputSize: 8, Classes: 38},
		scores: scoresWithPeak(38, 30, 0.9),
	}
	store := &recordingStore{}
	svc := NewService(classifier, failingRepo{}, store)

	if _, err := svc.Detect(context.Background(), "ramesh", "leaf.png", leafPNG(t)); err != nil {
		t.Fatalf("Detect should survive a failed history insert: %v", err)
	}
	if len(store.objects) != 1 || len(store.removed) != 1 || store.removed[0] != store.objects[0] {
		t.Fatalf("expected the archived object to be cleaned up, objects=%v removed=%v", store.objects, store.removed)
	}
}

func TestDetectArchiveFailureDoesNotFailDetection(t *testing.T) {
	classifier := stubImageClassifier{
		info:   inference.ImageModelInfo{InputSize: 8, Classes: 38},
		scores: scoresWithPeak(38, 30, 0.9),
	}
	repo := NewMemoryRepo()
	svc := NewService(classifier, repo, &recordingStore{err: errors.New("bucket offline")})

	if _, err := svc.Detect(context.Background(), "ramesh", "leaf.png", leafPNG(t)); err != nil {
		t.Fatalf("Detect should survive archive failure: %v", err)
	}
	records, _ := repo.ListByUsername(context.Background(), "ramesh", 10)
	if len(records) != 1 || records[0].ImageObject != "" {
		t.Fatalf("expected history without image object, got %+v", records)
	}
}

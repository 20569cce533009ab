package classifier

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/aquacheck/internal/quality"
)

func loadTestForest(t *testing.T) *Forest {
	t.Helper()
	f, err := LoadForest(filepath.Join("testdata", "forest.json"))
	require.NoError(t, err)
	return f
}

func features(t *testing.T, s quality.Sample) []float64 {
	t.Helper()
	vec, err := FeatureVector(s)
	require.NoError(t, err)
	return vec
}

func TestLoadForest(t *testing.T) {
	f := loadTestForest(t)
	assert.Equal(t, "forest", f.Name())
	assert.Equal(t, 2, f.Trees())
	assert.Equal(t, filepath.Join("testdata", "forest.json"), f.Path())
}

func TestForest_PredictProba(t *testing.T) {
	f := loadTestForest(t)

	tests := []struct {
		name   string
		mutate func(quality.Sample)
		want   [2]float64
	}{
		// tree 1: ph > 6.5, Sulfate <= 400 -> [1, 3]; tree 2: Turbidity <= 4 -> [0, 4]
		{"baseline", func(quality.Sample) {}, [2]float64{0.125, 0.875}},
		{"acidic", func(s quality.Sample) { s[quality.PH] = 6.0 }, [2]float64{0.4, 0.6}},
		{"threshold goes left", func(s quality.Sample) { s[quality.PH] = 6.5 }, [2]float64{0.4, 0.6}},
		{"acidic and turbid", func(s quality.Sample) {
			s[quality.PH] = 6.0
			s[quality.Turbidity] = 5
		}, [2]float64{0.775, 0.225}},
		{"sulfate and turbid", func(s quality.Sample) {
			s[quality.Sulfate] = 450
			s[quality.Turbidity] = 5
		}, [2]float64{0.625, 0.375}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := fullSample()
			tt.mutate(s)

			got, err := f.PredictProba(context.Background(), features(t, s))
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.InDelta(t, tt.want[0], got[0], 1e-12)
			assert.InDelta(t, tt.want[1], got[1], 1e-12)
		})
	}
}

func TestForest_ThroughAdapter(t *testing.T) {
	res, err := NewAdapter(loadTestForest(t)).Classify(context.Background(), fullSample())
	require.NoError(t, err)
	assert.Equal(t, Potable, res.Label)
	assert.Equal(t, "87.50", res.ConfidenceText())
}

func TestForest_WrongArity(t *testing.T) {
	_, err := loadTestForest(t).PredictProba(context.Background(), []float64{1, 2, 3})
	assert.Error(t, err)
}

func TestForest_NonFiniteFeature(t *testing.T) {
	s := fullSample()
	s[quality.Sulfate] = math.NaN()

	_, err := NewAdapter(loadTestForest(t)).Classify(context.Background(), s)
	var inf *InferenceError
	assert.ErrorAs(t, err, &inf)
}

func TestLoadForest_MissingFile(t *testing.T) {
	_, err := LoadForest(filepath.Join(t.TempDir(), "nope.json"))
	var mle *ModelLoadError
	require.ErrorAs(t, err, &mle)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseForest_Rejects(t *testing.T) {
	valid, err := os.ReadFile(filepath.Join("testdata", "forest.json"))
	require.NoError(t, err)
	base := string(valid)

	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"not json", `{"features":`, "invalid JSON"},
		{"missing trees", `{"features":["ph"],"classes":[0,1]}`, "schema validation"},
		{"three classes", strings.Replace(base, `"classes": [0, 1]`, `"classes": [0, 1, 2]`, 1), "schema validation"},
		{"swapped classes", strings.Replace(base, `"classes": [0, 1]`, `"classes": [1, 0]`, 1), "classes must be"},
		{"feature order", strings.Replace(base, `["ph", "Hardness"`, `["Hardness", "ph"`, 1), "feature 0"},
		{"negative weight", strings.Replace(base, `[8, 2]`, `[8, -2]`, 1), "schema validation"},
		{"child out of range", strings.Replace(base, `"children_right": [2, -1, 4, -1, -1]`, `"children_right": [2, -1, 9, -1, -1]`, 1), "child index"},
		{"child points back", strings.Replace(base, `"children_left": [1, -1, 3, -1, -1]`, `"children_left": [1, -1, 0, -1, -1]`, 1), "child index"},
		{"single child", strings.Replace(base, `"children_right": [2, -1, 4, -1, -1]`, `"children_right": [2, 3, 4, -1, -1]`, 1), "exactly one child"},
		{"length mismatch", strings.Replace(base, `"threshold": [4.0, -2.0, -2.0]`, `"threshold": [4.0, -2.0]`, 1), "differ in length"},
		{"feature index", strings.Replace(base, `"feature": [8, -2, -2]`, `"feature": [9, -2, -2]`, 1), "feature index"},
		{"empty leaf", strings.Replace(base, `[0, 4]`, `[0, 0]`, 1), "no class weight"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseForest([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_ForestFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ModelPath = filepath.Join("testdata", "forest.json")

	clf, err := Load(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "forest", clf.Name())
}

func TestLoad_ForestBadArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"trees":[]}`), 0o644))

	cfg := DefaultConfig()
	cfg.ModelPath = path
	_, err := Load(context.Background(), cfg, nil)

	var mle *ModelLoadError
	require.ErrorAs(t, err, &mle)
	assert.Equal(t, path, mle.Path)
}

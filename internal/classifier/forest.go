package classifier

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/aquacheck/internal/quality"
)

// DefaultModelPath is where the forest artifact is looked up when no path
// is configured.
const DefaultModelPath = "water_potability_forest.json"

// leafNode marks a missing child in scikit-learn's tree arrays.
const leafNode = -1

//go:embed forest.schema.json
var forestSchemaJSON []byte

var (
	forestSchemaOnce sync.Once
	forestSchema     *jsonschema.Schema
	forestSchemaErr  error
)

func compiledForestSchema() (*jsonschema.Schema, error) {
	forestSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(forestSchemaJSON))
		if err != nil {
			forestSchemaErr = fmt.Errorf("parse forest schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://forest.json", doc); err != nil {
			forestSchemaErr = fmt.Errorf("add forest schema: %w", err)
			return
		}
		forestSchema, forestSchemaErr = c.Compile("schema://forest.json")
	})
	return forestSchema, forestSchemaErr
}

// forestArtifact is the on-disk form of a random forest: one entry per
// estimator holding the parallel node arrays of its fitted tree.
type forestArtifact struct {
	Format   string       `json:"format"`
	Features []string     `json:"features"`
	Classes  []int        `json:"classes"`
	Trees    []treeArrays `json:"trees"`
}

type treeArrays struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

// Forest is a random-forest Classifier evaluated in process.
type Forest struct {
	path     string
	features int
	trees    []treeArrays
}

// LoadForest reads and validates a forest artifact. Every failure is a
// *ModelLoadError.
func LoadForest(path string) (*Forest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ModelLoadError{Path: path, Err: err}
	}
	f, err := ParseForest(data)
	if err != nil {
		return nil, &ModelLoadError{Path: path, Err: err}
	}
	f.path = path
	return f, nil
}

// ParseForest validates an artifact against the forest schema and then
// checks that the trees are well formed and match the feature order.
func ParseForest(data []byte) (*Forest, error) {
	schema, err := compiledForestSchema()
	if err != nil {
		return nil, err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(inst); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var art forestArtifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}

	if err := checkFeatureOrder(art.Features); err != nil {
		return nil, err
	}
	if art.Classes[0] != 0 || art.Classes[1] != 1 {
		return nil, fmt.Errorf("classes must be [0, 1], got %v", art.Classes)
	}
	for i, t := range art.Trees {
		if err := checkTree(t, len(art.Features)); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
	}

	return &Forest{features: len(art.Features), trees: art.Trees}, nil
}

func checkFeatureOrder(features []string) error {
	want := quality.Parameters()
	if len(features) != len(want) {
		return fmt.Errorf("expected %d features, got %d", len(want), len(features))
	}
	for i, p := range want {
		if features[i] != string(p) {
			return fmt.Errorf("feature %d is %q, want %q", i, features[i], p)
		}
	}
	return nil
}

// checkTree validates node arrays. Children always have a larger index
// than their parent, which rules out cycles.
func checkTree(t treeArrays, nFeatures int) error {
	n := len(t.ChildrenLeft)
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return fmt.Errorf("node arrays differ in length")
	}

	for node := range n {
		left, right := t.ChildrenLeft[node], t.ChildrenRight[node]
		if len(t.Value[node]) != 2 {
			return fmt.Errorf("node %d: expected 2 class weights, got %d", node, len(t.Value[node]))
		}

		if left == leafNode || right == leafNode {
			if left != right {
				return fmt.Errorf("node %d: has exactly one child", node)
			}
			if t.Value[node][0]+t.Value[node][1] <= 0 {
				return fmt.Errorf("node %d: leaf has no class weight", node)
			}
			continue
		}

		if left <= node || left >= n || right <= node || right >= n {
			return fmt.Errorf("node %d: child index out of range", node)
		}
		if f := t.Feature[node]; f < 0 || f >= nFeatures {
			return fmt.Errorf("node %d: feature index %d out of range", node, f)
		}
		if math.IsNaN(t.Threshold[node]) {
			return fmt.Errorf("node %d: threshold is NaN", node)
		}
	}
	return nil
}

// Name returns "forest".
func (f *Forest) Name() string { return "forest" }

// Path returns the artifact path the forest was loaded from.
func (f *Forest) Path() string { return f.path }

// Trees returns the number of estimators.
func (f *Forest) Trees() int { return len(f.trees) }

// PredictProba averages the normalized leaf weights of every tree.
func (f *Forest) PredictProba(_ context.Context, x []float64) ([]float64, error) {
	if len(x) != f.features {
		return nil, fmt.Errorf("expected %d features, got %d", f.features, len(x))
	}
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("feature %d is not finite", i)
		}
	}

	var sum [2]float64
	for _, t := range f.trees {
		leaf := t.leaf(x)
		w := t.Value[leaf]
		total := w[0] + w[1]
		sum[0] += w[0] / total
		sum[1] += w[1] / total
	}

	n := float64(len(f.trees))
	return []float64{sum[0] / n, sum[1] / n}, nil
}

func (t treeArrays) leaf(x []float64) int {
	node := 0
	for t.ChildrenLeft[node] != leafNode {
		if x[t.Feature[node]] <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return node
}

package out

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"hdt/internal/modules/curriculum/domain"
	curriculumout "hdt/internal/modules/curriculum/port/out"
)

//go:embed default_curriculum.yaml
var defaultCurriculum []byte

type document struct {
	Title      string             `yaml:"title"`
	Skills     []string           `yaml:"skills"`
	Tasks      []string           `yaml:"tasks"`
	Phases     []domain.Phase     `yaml:"phases"`
	Days       []domain.Day       `yaml:"days"`
	Milestones []domain.Milestone `yaml:"milestones"`
	Projects   []domain.Project   `yaml:"projects"`
	Resources  []domain.Resources `yaml:"resources"`
}

// YAMLSource reads the curriculum from a YAML file, or from the embedded
// default when path is empty.
type YAMLSource struct {
	path string
}

func NewYAMLSource(path string) curriculumout.Source {
	return &YAMLSource{path: path}
}

func (s *YAMLSource) Load(_ context.Context) (domain.Curriculum, error) {
	raw := defaultCurriculum
	if s.path != "" {
		b, err := os.ReadFile(s.path)
		if err != nil {
			return domain.Curriculum{}, fmt.Errorf("read curriculum: %w", err)
		}
		raw = b
	}
	return Decode(raw)
}

// Decode parses a curriculum document. It does not validate.
func Decode(raw []byte) (domain.Curriculum, error) {
	doc := document{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return domain.Curriculum{}, fmt.Errorf("decode curriculum: %w", err)
	}
	days := make(map[int]domain.Day, len(doc.Days))
	for _, d := range doc.Days {
		if _, dup := days[d.Number]; dup {
			return domain.Curriculum{}, fmt.Errorf("decode curriculum: duplicate day %d", d.Number)
		}
		days[d.Number] = d
	}
	return domain.Curriculum{
		Title:      doc.Title,
		Days:       days,
		Phases:     doc.Phases,
		Milestones: doc.Milestones,
		Projects:   doc.Projects,
		Tasks:      doc.Tasks,
		Skills:     doc.Skills,
		Resources:  doc.Resources,
	}, nil
}

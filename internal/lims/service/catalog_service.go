package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/criteria"
	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/entity"
	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CatalogService resolves testing templates into requirement sections with
// instantiated criterion tables. Templates are cached in redis per
// (sample type, requirement); a cache or database miss falls back to the
// generic schema instead of failing.
type CatalogService struct {
	templateRepo *repository.TemplateRepository
	rdb          *redis.Client
	cacheTTL     time.Duration
	logger       *zap.Logger
}

func NewCatalogService(templateRepo *repository.TemplateRepository, rdb *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		templateRepo: templateRepo,
		rdb:          rdb,
		cacheTTL:     cacheTTL,
		logger:       logger,
	}
}

// Sections builds the requirement sections for a sample across its
// testing requirements. Every requirement yields a section: catalog
// misses produce a generic single-criterion section so previously
// registered requirements always render.
func (s *CatalogService) Sections(ctx context.Context, sampleType, subType string, requirements []string) []*criteria.RequirementSection {
	sections := make([]*criteria.RequirementSection, 0, len(requirements))
	for i, req := range requirements {
		sectionID := fmt.Sprintf("req-%02d", i+1)
		sec := s.buildSection(ctx, sectionID, sampleType, subType, req)
		sections = append(sections, sec)
	}
	return sections
}

func (s *CatalogService) buildSection(ctx context.Context, sectionID, sampleType, subType, requirement string) *criteria.RequirementSection {
	templates, err := s.lookupTemplates(ctx, sampleType, requirement)
	if err != nil {
		s.logger.Warn("catalog lookup failed, using generic schema",
			zap.String("sample_type", sampleType),
			zap.String("requirement", requirement),
			zap.Error(err),
		)
		return s.genericSection(sectionID, sampleType, subType, requirement)
	}
	if len(templates) == 0 {
		return s.genericSection(sectionID, sampleType, subType, requirement)
	}

	tpl := templates[0]
	raw := make([]criteria.RawSection, 0, len(tpl.Sections))
	for _, sec := range tpl.Sections {
		raw = append(raw, toRawSection(sec))
	}

	title := tpl.Description
	if title == "" {
		title = tpl.Name
	}
	section, dropped := criteria.BuildSection(sectionID, requirement, title, sampleType, subType, raw)
	for _, id := range dropped {
		s.logger.Warn("dropped malformed template section",
			zap.String("template_id", tpl.ID),
			zap.String("section_id", id),
		)
	}
	if len(section.Criteria) == 0 {
		return s.genericSection(sectionID, sampleType, subType, requirement)
	}
	return section
}

// lookupTemplates serves templates from redis when possible, refreshing
// the cache on miss.
func (s *CatalogService) lookupTemplates(ctx context.Context, sampleType, requirement string) ([]entity.TestTemplate, error) {
	cacheKey := "catalog:" + sampleType + ":" + requirement

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var templates []entity.TestTemplate
			if err := json.Unmarshal([]byte(cached), &templates); err == nil {
				return templates, nil
			}
			// Stale or corrupt cache entry: fall through to the database.
			s.rdb.Del(ctx, cacheKey)
		}
	}

	templates, err := s.templateRepo.FindByLookup(ctx, sampleType, requirement)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil && len(templates) > 0 {
		if payload, err := json.Marshal(templates); err == nil {
			s.rdb.Set(ctx, cacheKey, payload, s.cacheTTL)
		}
	}
	return templates, nil
}

func (s *CatalogService) genericSection(sectionID, sampleType, subType, requirement string) *criteria.RequirementSection {
	structure := criteria.BuildStructure(sampleType, subType, requirement, criteria.KindGeneric)
	c := &criteria.Criterion{
		ID:            sectionID + "-generic",
		Name:          requirement,
		SectionNumber: "1.1",
		Structure:     structure,
		Data:          criteria.NewTableData(structure),
		Supplementary: criteria.DefaultSupplementary(),
	}
	return &criteria.RequirementSection{
		ID:              sectionID,
		RequirementName: requirement,
		SectionTitle:    requirement,
		Criteria:        []*criteria.Criterion{c},
	}
}

func toRawSection(sec entity.TemplateSection) criteria.RawSection {
	raw := criteria.RawSection{
		ID:            sec.ID,
		Name:          sec.Name,
		Kind:          criteria.CriterionKind(sec.Kind),
		Level:         sec.Level,
		OrderIndex:    sec.OrderIndex,
		RefCode:       sec.RefCode,
		Supplementary: sec.Supplementary,
	}
	if sec.ParentID != nil {
		raw.ParentID = *sec.ParentID
	}
	for _, row := range sec.Rows {
		raw.Rows = append(raw.Rows, criteria.RawRow{
			ID:         row.ID,
			SubHeader:  row.SubHeader,
			OrderIndex: row.OrderIndex,
			Values:     row.Values,
		})
	}
	return raw
}

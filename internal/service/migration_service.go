package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/classpad-app/classpad-backend/internal/model"
)

const unnamedClassName = "Unnamed Class"

// MigrationReport summarizes what a schema-v2 migration run changed.
type MigrationReport struct {
	TemplatesCreated int `json:"templates_created"`
	SectionsStamped  int `json:"sections_stamped"`
	InvitesCleaned   int `json:"invites_cleaned"`
}

// MigrationService backfills classTemplates from existing classes and
// strips redundant display fields from invites. Idempotent: groups whose
// first section already references a template are skipped, and unsetting
// already-absent invite fields is a no-op.
type MigrationService struct {
	classes   ClassStore
	invites   InviteStore
	templates ClassTemplateStore
	batchSize int
	log       zerolog.Logger
}

// NewMigrationService creates a new MigrationService.
func NewMigrationService(classes ClassStore, invites InviteStore, templates ClassTemplateStore, batchSize int, log zerolog.Logger) *MigrationService {
	if batchSize <= 0 {
		batchSize = 200
	}
	return &MigrationService{
		classes:   classes,
		invites:   invites,
		templates: templates,
		batchSize: batchSize,
		log:       log.With().Str("component", "migration").Logger(),
	}
}

// sectionStub keeps only what the grouping pass needs per class, so the
// full documents (students, groups) are not held in memory.
type sectionStub struct {
	ID          string
	ClassName   string
	ClassDesc   string
	ClassIcon   string
	Owner       string
	BaseClassID string
}

// MigrateToV2 runs both migration steps. Best effort: it stops at the first
// storage error, logging progress so far; a rerun picks up where groups
// were left unstamped.
func (s *MigrationService) MigrateToV2(ctx context.Context) (*MigrationReport, error) {
	report := &MigrationReport{}

	if err := s.backfillTemplates(ctx, report); err != nil {
		s.log.Error().Err(err).Msg("Migration failed during template backfill")
		return report, err
	}
	if err := s.cleanInvites(ctx, report); err != nil {
		s.log.Error().Err(err).Msg("Migration failed during invite cleanup")
		return report, err
	}

	s.log.Info().
		Int("templates_created", report.TemplatesCreated).
		Int("sections_stamped", report.SectionsStamped).
		Int("invites_cleaned", report.InvitesCleaned).
		Msg("Migration completed")
	return report, nil
}

// backfillTemplates groups class sections by name and creates one template
// per group whose first section (in _id order) does not yet reference one.
func (s *MigrationService) backfillTemplates(ctx context.Context, report *MigrationReport) error {
	var stubs []sectionStub
	err := s.classes.IterateAll(ctx, s.batchSize, func(c model.Class) error {
		stubs = append(stubs, sectionStub{
			ID:          c.ID,
			ClassName:   c.ClassName,
			ClassDesc:   c.ClassDesc,
			ClassIcon:   c.ClassIcon,
			Owner:       c.Owner,
			BaseClassID: c.BaseClassID,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("iterate classes: %w", err)
	}

	groups := lo.GroupBy(stubs, func(st sectionStub) string {
		if st.ClassName == "" {
			return unnamedClassName
		}
		return st.ClassName
	})
	s.log.Info().
		Int("sections", len(stubs)).
		Int("groups", len(groups)).
		Msg("Classes grouped by name")

	// Process groups in a stable order so partial failures are reproducible.
	names := lo.Keys(groups)
	sort.Strings(names)

	for _, name := range names {
		sections := groups[name]
		first := sections[0]

		// Idempotence guard: the first section carrying a template reference
		// means this group was completed (or at least begun) on a prior run.
		if first.BaseClassID != "" {
			s.log.Debug().Str("class_name", name).Msg("Group already migrated, skipping")
			continue
		}

		tmpl := &model.ClassTemplate{
			ID:        primitive.NewObjectID().Hex(),
			ClassName: name,
			ClassDesc: first.ClassDesc,
			ClassIcon: first.ClassIcon,
			Owner:     first.Owner,
			CreatedAt: time.Now().UTC(),
		}
		if tmpl.ClassIcon == "" {
			tmpl.ClassIcon = model.DefaultClassIcon
		}
		if err := s.templates.Insert(ctx, tmpl); err != nil {
			return fmt.Errorf("create template for %q: %w", name, err)
		}
		report.TemplatesCreated++

		for _, sec := range sections {
			if err := s.classes.SetBaseClassID(ctx, sec.ID, tmpl.ID); err != nil {
				return fmt.Errorf("stamp section %s: %w", sec.ID, err)
			}
			report.SectionsStamped++
		}

		s.log.Info().
			Str("class_name", name).
			Str("template_id", tmpl.ID).
			Int("sections", len(sections)).
			Msg("Template created")
	}

	return nil
}

// cleanInvites strips the legacy display fields from every invite that
// points at a class, leaving code→classId pointers.
func (s *MigrationService) cleanInvites(ctx context.Context, report *MigrationReport) error {
	return s.invites.IterateAll(ctx, s.batchSize, func(inv model.Invite) error {
		if inv.ClassID == "" {
			return nil
		}
		if inv.ClassName == "" && inv.ClassIcon == "" && inv.ClassHour == "" &&
			inv.ClassDesc == "" && inv.TeacherName == "" {
			return nil // Already clean.
		}
		if err := s.invites.StripLegacyFields(ctx, inv.Code); err != nil {
			return fmt.Errorf("clean invite %s: %w", inv.Code, err)
		}
		report.InvitesCleaned++
		return nil
	})
}

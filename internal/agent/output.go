package agent

import (
	"encoding/json"
	"fmt"

	"github.com/jdelaney/contentpipe-go/internal/models"
	"github.com/jdelaney/contentpipe-go/internal/schema"
)

// Output holds one agent's decoded result. Exactly one typed field is set,
// matching the role that produced it.
type Output struct {
	Role         schema.Role
	Tags         *models.ArchivistTags
	Placement    *models.Placement
	Bundle       *models.RepurposeBundle
	Compilation  *models.CompilerOutput
	Calendar     *models.CalendarPlan
	Strategy     *models.StrategistOutput
	StarterPosts []models.StarterPost
}

// decodeOutput unmarshals validated JSON into the role's typed result.
func decodeOutput(role schema.Role, raw []byte) (*Output, error) {
	out := &Output{Role: role}
	var err error

	switch role {
	case schema.RoleArchivist:
		var tags models.ArchivistTags
		err = json.Unmarshal(raw, &tags)
		out.Tags = &tags
	case schema.RolePlacement:
		var placement models.Placement
		err = json.Unmarshal(raw, &placement)
		out.Placement = &placement
	case schema.RoleRepurposer:
		var bundle models.RepurposeBundle
		err = json.Unmarshal(raw, &bundle)
		out.Bundle = &bundle
	case schema.RoleCompiler:
		var compilation models.CompilerOutput
		err = json.Unmarshal(raw, &compilation)
		out.Compilation = &compilation
	case schema.RoleExecutive:
		var plan models.CalendarPlan
		err = json.Unmarshal(raw, &plan)
		out.Calendar = &plan
	case schema.RoleStrategist:
		var strategy models.StrategistOutput
		err = json.Unmarshal(raw, &strategy)
		out.Strategy = &strategy
	case schema.RoleStarter:
		var batch struct {
			Posts []models.StarterPost `json:"posts"`
		}
		err = json.Unmarshal(raw, &batch)
		out.StarterPosts = batch.Posts
	default:
		return nil, fmt.Errorf("no decoder for role %q", role)
	}

	if err != nil {
		return nil, fmt.Errorf("decode %s output: %w", role, err)
	}
	return out, nil
}

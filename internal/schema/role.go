// Package schema declares the output contracts for every agent role and
// validates decoded model output against them before anything is persisted.
package schema

// Role identifies an agent in the pipeline.
type Role string

const (
	RoleArchivist  Role = "archivist"
	RolePlacement  Role = "placement"
	RoleRepurposer Role = "repurposer"
	RoleCompiler   Role = "compiler"
	RoleExecutive  Role = "executive"
	RoleStrategist Role = "strategist"
	RoleStarter    Role = "starter"
)

// Roles lists every role with a registered contract, in pipeline order.
func Roles() []Role {
	return []Role{
		RoleArchivist,
		RolePlacement,
		RoleRepurposer,
		RoleCompiler,
		RoleExecutive,
		RoleStrategist,
		RoleStarter,
	}
}

package middleware

import "github.com/gmao-ics/techniciens-api/internal/model"

// Operations with role requirements. Reads only need authentication.
const (
	OpTechnicienCreate = "technicien:create"
	OpTechnicienUpdate = "technicien:update"
	OpTechnicienDelete = "technicien:delete"
	OpTechnicienAssign = "technicien:assign"
)

// Permissions maps each guarded operation to the roles allowed to perform
// it. Admin is implied everywhere and never listed.
var Permissions = map[string][]string{
	OpTechnicienCreate: {model.RoleManager},
	OpTechnicienUpdate: {model.RoleManager},
	OpTechnicienDelete: {},
	OpTechnicienAssign: {model.RoleManager},
}

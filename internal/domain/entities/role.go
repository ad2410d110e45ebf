package entities

import (
	"fmt"
	"sort"
)

// Role é o papel do usuário na plataforma. O cadastro público sempre
// cria RoleUser; admins são promovidos diretamente no banco.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Permission nomeia uma ação restrita. Permissões de conta valem sobre
// contas de terceiros: o dono nunca precisa delas para a própria conta.
type Permission string

const (
	PermissionUserWrite        Permission = "users.write"
	PermissionUserDelete       Permission = "users.delete"
	PermissionCommentModerate  Permission = "comments.moderate"
	PermissionAchievementWrite Permission = "achievements.write"
	PermissionChallengeWrite   Permission = "challenges.write"
)

var rolePermissions = map[Role]map[Permission]struct{}{
	RoleAdmin: permissionSet(
		PermissionUserWrite,
		PermissionUserDelete,
		PermissionCommentModerate,
		PermissionAchievementWrite,
		PermissionChallengeWrite,
	),
	RoleUser: permissionSet(),
}

func permissionSet(perms ...Permission) map[Permission]struct{} {
	set := make(map[Permission]struct{}, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// ParseRole converte o valor persistido, recusando papéis desconhecidos
func ParseRole(value string) (Role, error) {
	role := Role(value)
	if !role.IsValid() {
		return "", fmt.Errorf("unknown role %q", value)
	}
	return role, nil
}

// Permissions retorna as permissões do papel em ordem alfabética
func (r Role) Permissions() []Permission {
	perms := make([]Permission, 0, len(rolePermissions[r]))
	for p := range rolePermissions[r] {
		perms = append(perms, p)
	}
	sort.Slice(perms, func(i, j int) bool { return perms[i] < perms[j] })
	return perms
}

func (r Role) HasPermission(permission Permission) bool {
	_, ok := rolePermissions[r][permission]
	return ok
}

// IsValid verifica se o role é conhecido
func (r Role) IsValid() bool {
	_, ok := rolePermissions[r]
	return ok
}

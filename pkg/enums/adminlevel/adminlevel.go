package adminlevel

//go:generate go-enum --values --names --noprefix --nocase

// Level
/* ENUM(
user, admin, super_admin
) */
type Level string

// Privileged reports whether the level grants admin commands.
func (x Level) Privileged() bool {
	return x == Admin || x == SuperAdmin
}

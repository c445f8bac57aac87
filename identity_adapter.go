package authkit

type authIdentity struct {
	id        string
	username  string
	email     string
	firstName string
	lastName  string
}

func (a authIdentity) ID() string        { return a.id }
func (a authIdentity) Username() string  { return a.username }
func (a authIdentity) Email() string     { return a.email }
func (a authIdentity) FirstName() string { return a.firstName }
func (a authIdentity) LastName() string  { return a.lastName }

var _ Identity = authIdentity{}

// IdentityFromUser adapts a stored user into the read-only Identity view
// the token layer consumes.
func IdentityFromUser(user *User) Identity {
	return authIdentity{
		id:        user.ID.String(),
		username:  user.Username,
		email:     user.Email,
		firstName: user.FirstName,
		lastName:  user.LastName,
	}
}

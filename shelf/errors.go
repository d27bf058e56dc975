package shelf

import "fmt"

type (
	UserExists struct {
		Name string
	}

	NotFound struct {
		Kind string
		Key  string
	}

	// UnknownOwner is returned when a row would point to a user that
	// does not exist
	UnknownOwner struct {
		OwnerID int64
	}
)

func (u UserExists) Error() string {
	return fmt.Sprintf("user %v already exists", u.Name)
}

func (n NotFound) Error() string {
	return fmt.Sprintf("%v %v not found", n.Kind, n.Key)
}

func (u UnknownOwner) Error() string {
	return fmt.Sprintf("owner %v does not exist", u.OwnerID)
}

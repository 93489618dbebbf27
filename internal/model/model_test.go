package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserDisplayName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", (&User{UserFirst: "Ada", UserLast: "Lovelace"}).DisplayName())
	assert.Equal(t, "Ada ", (&User{UserFirst: "Ada"}).DisplayName())
	assert.Equal(t, " Lovelace", (&User{UserLast: "Lovelace"}).DisplayName())
	assert.Equal(t, "", (&User{}).DisplayName())
}

func TestClassDefaults(t *testing.T) {
	c := &Class{}
	assert.Equal(t, DefaultClassName, c.NameOrDefault())
	assert.Equal(t, DefaultClassIcon, c.IconOrDefault())

	c = &Class{ClassName: "Math", ClassIcon: "Calculator"}
	assert.Equal(t, "Math", c.NameOrDefault())
	assert.Equal(t, "Calculator", c.IconOrDefault())
}

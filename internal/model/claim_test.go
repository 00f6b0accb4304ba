package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func docs(n int) []*Document {
	res := make([]*Document, 0, n)

	for i := 0; i < n; i++ {
		res = append(res, &Document{ID: fmt.Sprintf("doc%d", i), Label: fmt.Sprintf("Doc %d", i), Required: true, FileType: FilePdf})
	}

	return res
}

func TestClaimValidate(t *testing.T) {
	c := &Claim{Title: "test", Documents: docs(10)}
	require.NoError(t, c.Validate())

	c.Documents = docs(11)
	require.ErrorIs(t, c.Validate(), ErrTooManyDocuments)
}

func TestClaimPostDefaults(t *testing.T) {
	c := (&ClaimPostDTO{Title: "test"}).ToClaim()

	require.True(t, c.Active)
	require.Equal(t, "RICORSO COLLETTIVO", c.BadgeText)

	inactive := false
	c = (&ClaimPostDTO{Title: "test", BadgeText: "AZIONE LEGALE", Active: &inactive}).ToClaim()

	require.False(t, c.Active)
	require.Equal(t, "AZIONE LEGALE", c.BadgeText)
}

func TestClaimPartialUpdate(t *testing.T) {
	c := &Claim{
		Title:       "titolo",
		Description: "desc",
		BadgeText:   "BADGE",
		Fields:      []*Field{{ID: "nome", Label: "Nome", Type: FieldText}},
		Documents:   docs(2),
		Active:      true,
	}

	d := "desc2"
	b := "BADGE2"
	changed := (&ClaimPutDTO{Description: &d, BadgeText: &b}).Apply(c)

	require.True(t, changed)
	require.Equal(t, "desc2", c.Description)
	require.Equal(t, "BADGE2", c.BadgeText)
	// everything else untouched
	require.Equal(t, "titolo", c.Title)
	require.Len(t, c.Fields, 1)
	require.Len(t, c.Documents, 2)
	require.True(t, c.Active)

	require.False(t, (&ClaimPutDTO{}).Apply(c))
}

func TestGetDocument(t *testing.T) {
	c := &Claim{Documents: docs(3)}

	require.NotNil(t, c.GetDocument("doc1"))
	require.Nil(t, c.GetDocument("nope"))
}

func TestAdminPassword(t *testing.T) {
	a := &Admin{Username: "admin"}
	require.NoError(t, a.SetPassword("secret"))

	require.NotEqual(t, "secret", a.Password)
	require.True(t, a.CheckPassword("secret"))
	require.False(t, a.CheckPassword("wrong"))
}

func TestInviteRedeemable(t *testing.T) {
	i := &Invite{Token: NewInviteToken()}
	i.ExpiresAt = i.CreatedAt.AddDate(0, 0, 7)

	require.Len(t, i.Token, 32)
	require.NoError(t, i.CheckRedeemable(i.ExpiresAt.AddDate(0, 0, -1)))
	require.ErrorIs(t, i.CheckRedeemable(i.ExpiresAt.AddDate(0, 0, 1)), ErrInviteExpired)

	i.Used = true
	require.ErrorIs(t, i.CheckRedeemable(i.CreatedAt), ErrInviteUsed)
}

//go:build unit

package commands_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"ops-console/internal/domain/user"
	"ops-console/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePreviewGatekeeping(t *testing.T) {
	t.Run("unknown upload type", func(t *testing.T) {
		f := newPreviewFixture(t)
		_, err := f.uc.CreatePreview(context.Background(), commands.CreatePreviewRequest{
			Type:    "menuprices",
			CSVText: "outlet_id\n1\n",
		}, f.actorID, user.RoleAdmin)
		assert.ErrorIs(t, err, commands.ErrUnknownUploadType)
	})

	t.Run("role policy per type", func(t *testing.T) {
		cases := []struct {
			typ  string
			csv  string
			role user.Role
			deny bool
		}{
			{"menuPricesAvailability", "outlet_id,item_id,base_price,is_available\n", user.RoleAdmin, false},
			{"menuPricesAvailability", "outlet_id,item_id,base_price,is_available\n", user.RoleOperator, true},
			{"menuPricesAvailability", "outlet_id,item_id,base_price,is_available\n", user.RoleViewer, true},
			{"menuStock", "outlet_id,item_id,stock\n", user.RoleOperator, false},
			{"menuStock", "outlet_id,item_id,stock\n", user.RoleViewer, true},
			{"campaignDiscounts", "outlet_id,campaign_id,item_id,discount_type,discount_value\n", user.RoleOperator, false},
			{"campaignDiscounts", "outlet_id,campaign_id,item_id,discount_type,discount_value\n", user.RoleViewer, true},
		}

		for _, tc := range cases {
			f := newPreviewFixture(t)
			_, err := f.uc.CreatePreview(context.Background(), commands.CreatePreviewRequest{
				Type:    tc.typ,
				CSVText: tc.csv,
			}, f.actorID, tc.role)
			if tc.deny {
				assert.ErrorIs(t, err, commands.ErrRoleNotAllowed, "%s / %s", tc.typ, tc.role)
			} else {
				assert.NoError(t, err, "%s / %s", tc.typ, tc.role)
			}
		}
	})

	t.Run("csv without headers", func(t *testing.T) {
		f := newPreviewFixture(t)
		_, err := f.uc.CreatePreview(context.Background(), commands.CreatePreviewRequest{
			Type:    "menuStock",
			CSVText: "\n\n  \n",
		}, f.actorID, user.RoleOperator)
		assert.ErrorIs(t, err, commands.ErrNoParseableHeaders)
	})

	t.Run("row ceiling", func(t *testing.T) {
		f := newPreviewFixture(t)
		small := commands.NewUploadUseCase(&fakeUoW{state: f.state}, f.store, 2)

		var b strings.Builder
		b.WriteString("outlet_id,item_id,stock\n")
		for range 3 {
			b.WriteString("1,10,5\n")
		}

		_, err := small.CreatePreview(context.Background(), commands.CreatePreviewRequest{
			Type:    "menuStock",
			CSVText: b.String(),
		}, f.actorID, user.RoleOperator)
		assert.ErrorIs(t, err, commands.ErrTooManyRows)
	})

	t.Run("rows exactly at the ceiling pass", func(t *testing.T) {
		f := newPreviewFixture(t)
		small := commands.NewUploadUseCase(&fakeUoW{state: f.state}, f.store, 2)

		_, err := small.CreatePreview(context.Background(), commands.CreatePreviewRequest{
			Type:    "menuStock",
			CSVText: "outlet_id,item_id,stock\n1,10,5\n1,11,5\n",
		}, f.actorID, user.RoleOperator)
		assert.NoError(t, err)
	})

	t.Run("missing required columns lists them", func(t *testing.T) {
		f := newPreviewFixture(t)
		_, err := f.uc.CreatePreview(context.Background(), commands.CreatePreviewRequest{
			Type:    "menuPricesAvailability",
			CSVText: "outlet_id,item_id\n1,10\n",
		}, f.actorID, user.RoleAdmin)
		require.ErrorIs(t, err, commands.ErrMissingColumns)
		assert.Contains(t, err.Error(), "base_price")
		assert.Contains(t, err.Error(), "is_available")
	})

	t.Run("role is checked before csv content", func(t *testing.T) {
		f := newPreviewFixture(t)
		_, err := f.uc.CreatePreview(context.Background(), commands.CreatePreviewRequest{
			Type:    "menuPricesAvailability",
			CSVText: "garbage",
		}, f.actorID, user.RoleViewer)
		assert.ErrorIs(t, err, commands.ErrRoleNotAllowed)
	})
}

func TestGetPreview(t *testing.T) {
	t.Run("owner can re-display a staged preview", func(t *testing.T) {
		f := newPreviewFixture(t)
		p := f.createPreview(t, "menuStock", "outlet_id,item_id,stock\n1,10,25\n", user.RoleOperator)

		got, err := f.uc.GetPreview(context.Background(), p.ID, f.actorID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)
		assert.Len(t, got.Rows, 1)
	})

	t.Run("someone else's preview is not found", func(t *testing.T) {
		f := newPreviewFixture(t)
		p := f.createPreview(t, "menuStock", "outlet_id,item_id,stock\n1,10,25\n", user.RoleOperator)

		_, err := f.uc.GetPreview(context.Background(), p.ID, uuid.New())
		assert.ErrorIs(t, err, commands.ErrPreviewNotFound)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		f := newPreviewFixture(t)
		_, err := f.uc.GetPreview(context.Background(), uuid.New(), f.actorID)
		assert.ErrorIs(t, err, commands.ErrPreviewNotFound)
	})

	t.Run("expired preview is not found", func(t *testing.T) {
		f := newPreviewFixture(t)
		p := f.createPreview(t, "menuStock", "outlet_id,item_id,stock\n1,10,25\n", user.RoleOperator)

		f.clk.Add(21 * time.Minute)
		_, err := f.uc.GetPreview(context.Background(), p.ID, f.actorID)
		assert.ErrorIs(t, err, commands.ErrPreviewNotFound)
	})
}

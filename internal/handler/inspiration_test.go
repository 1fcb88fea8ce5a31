package handler

import (
	"context"
	"testing"

	"nastaran/internal/domain"
	"nastaran/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

const testInspirationID = "6f1c2a3e-9d7b-4f3a-8b1e-2c4d5e6f7a8b"

func mediaUpdate(ref, caption string) domain.Update {
	return domain.NewMediaUpdate(testUserID, testChatID, ref, caption)
}

func TestInspirationCreateFlow(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	d := f.dispatcher(t)

	f.expectAnswer("cb-1")
	f.expectSend("📸 Send a photo with a caption.")
	f.inspirations.On("Add", mock.Anything, testUserID, "photo-1", "sunset").
		Return(testutil.NewTestInspiration(testInspirationID, testUserID, "sunset"), nil).Once()
	f.expectSend("✅ Inspiration saved. You can enhance it:").Once()

	require.NoError(t, d.Dispatch(ctx, callbackUpdate("cb-1", ActInspAdd)))
	assert.True(t, f.intents.Pending(testUserID))

	require.NoError(t, d.Dispatch(ctx, mediaUpdate("photo-1", "sunset")))
	assert.False(t, f.intents.Pending(testUserID))

	// No new insp_add: the second photo matches nothing and is dropped silently
	require.NoError(t, d.Dispatch(ctx, mediaUpdate("photo-2", "sunrise")))

	f.inspirations.AssertNumberOfCalls(t, "Add", 1)
	f.assertExpectations(t)
}

func TestInspirationCreate_RequiresCaption(t *testing.T) {
	f := newFixture()
	f.intents.Enable(testUserID)

	assert.False(t, f.handler.canHandleInspirationCreate(mediaUpdate("photo-1", "   ")))
	// The predicate bails out before consuming the intent
	assert.True(t, f.intents.Pending(testUserID))

	assert.True(t, f.handler.canHandleInspirationCreate(mediaUpdate("photo-1", "sunset")))
	assert.False(t, f.intents.Pending(testUserID))
}

func TestInspirationCreate_SaveFails(t *testing.T) {
	f := newFixture()
	f.inspirations.On("Add", mock.Anything, testUserID, "photo-1", "sunset").Return(nil, assert.AnError)
	f.expectSend("⚠️ Couldn't save the inspiration. Tap ➕ Add Inspiration to try again.")

	require.NoError(t, f.handler.handleInspirationCreate(context.Background(), mediaUpdate("photo-1", "sunset")))
	f.assertExpectations(t)
}

func TestInspirationEditFlow(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	d := f.dispatcher(t)

	f.expectAnswer("cb-1")
	f.expectSend("✏ Send the new caption.")
	f.inspirations.On("UpdateContent", mock.Anything, testUserID, "E1", "new text").Return(nil).Once()
	f.expectSend("✅ Inspiration updated.").Once()

	require.NoError(t, d.Dispatch(ctx, callbackUpdate("cb-1", "insp_edit:E1")))
	ec, ok := f.edits.TryGet(testUserID)
	require.True(t, ok)
	assert.Equal(t, domain.EditContext{TargetID: "E1", Field: domain.EditContent}, ec)

	require.NoError(t, d.Dispatch(ctx, textUpdate("new text")))
	_, ok = f.edits.TryGet(testUserID)
	assert.False(t, ok)

	// Context is gone, so unrelated text reaches no edit handler
	require.NoError(t, d.Dispatch(ctx, textUpdate("hello again")))

	f.inspirations.AssertNumberOfCalls(t, "UpdateContent", 1)
	f.assertExpectations(t)
}

func TestInspirationEdit_ClearsContextOnFailure(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantText string
	}{
		{"entity gone", domain.ErrNotFound, inspirationNotFoundText},
		{"invalid input", domain.ErrInvalidInput, "⚠️ That doesn't look right. Please try again."},
		{"storage failure", assert.AnError, inspirationErrorText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.edits.Set(testUserID, domain.EditContext{TargetID: "E1", Field: domain.EditLabel})
			f.inspirations.On("UpdateLabel", mock.Anything, testUserID, "E1", "travel").Return(tt.err)
			f.expectSend(tt.wantText)

			require.NoError(t, f.handler.handleInspirationEdit(context.Background(), textUpdate("  travel ")))

			_, ok := f.edits.TryGet(testUserID)
			assert.False(t, ok)
			f.assertExpectations(t)
		})
	}
}

func TestInspirationEdit_Tags(t *testing.T) {
	f := newFixture()
	f.edits.Set(testUserID, domain.EditContext{TargetID: "E1", Field: domain.EditTags})
	f.inspirations.On("UpdateTags", mock.Anything, testUserID, "E1", []string{"sea", "sky"}).Return(nil)
	f.expectSend("✅ Inspiration updated.")

	require.NoError(t, f.handler.handleInspirationEdit(context.Background(), textUpdate(" sea, ,sky ,")))
	f.assertExpectations(t)
}

func TestInspirationEdit_LostRace(t *testing.T) {
	f := newFixture()

	// Another update took the context between predicate and execution
	require.NoError(t, f.handler.handleInspirationEdit(context.Background(), textUpdate("late")))
	f.msg.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInspirationEdit_PredicateOnlyMatchesText(t *testing.T) {
	f := newFixture()
	f.edits.Set(testUserID, domain.EditContext{TargetID: "E1"})

	assert.True(t, f.handler.canHandleInspirationEdit(textUpdate("anything")))
	assert.False(t, f.handler.canHandleInspirationEdit(mediaUpdate("photo", "caption")))
	assert.False(t, f.handler.canHandleInspirationEdit(callbackUpdate("cb", "insp_add")))

	// Peeking must not consume
	_, ok := f.edits.TryGet(testUserID)
	assert.True(t, ok)
}

func TestInspirationCallback_StartingFlowsReplaceEachOther(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.msg.On("AnswerCallback", mock.Anything, mock.Anything, "").Return(nil)
	f.msg.On("Send", mock.Anything, testChatID, mock.Anything, mock.Anything).Return(nil)

	f.citySearch.Enable(testUserID)
	require.NoError(t, f.handler.handleInspirationCallback(ctx, callbackUpdate("cb-1", "insp_tags:E1")))
	assert.False(t, f.citySearch.Pending(testUserID))

	require.NoError(t, f.handler.handleInspirationCallback(ctx, callbackUpdate("cb-2", ActInspAdd)))
	_, editing := f.edits.TryGet(testUserID)
	assert.False(t, editing)
	assert.True(t, f.intents.Pending(testUserID))

	f.edits.Set(testUserID, domain.EditContext{TargetID: "E1"})
	require.NoError(t, f.handler.handleInspirationCallback(ctx, callbackUpdate("cb-3", ActInspCancel)))
	_, editing = f.edits.TryGet(testUserID)
	assert.False(t, editing)
	assert.False(t, f.intents.Pending(testUserID))
}

func TestInspirationCallback_List(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	items := make([]domain.Inspiration, 0, 5)
	for i := 0; i < 5; i++ {
		items = append(items, *testutil.NewTestInspiration(string(rune('a'+i)), testUserID, "caption"))
	}
	page := domain.Page[domain.Inspiration]{Items: items, Page: 1, PageSize: 5, TotalCount: 12}

	f.expectAnswer("cb-1")
	f.inspirations.On("Page", mock.Anything, testUserID, 1).Return(page, nil)
	f.msg.On("SendPhoto", mock.Anything, testChatID, mock.Anything, "caption", mock.Anything).Return(nil).Times(5)
	f.msg.On("Send", mock.Anything, testChatID, "Page 2", mock.MatchedBy(func(m *tele.ReplyMarkup) bool {
		return m != nil && len(m.InlineKeyboard) == 1 &&
			len(m.InlineKeyboard[0]) == 2 &&
			m.InlineKeyboard[0][0].Data == "insp_list:0" &&
			m.InlineKeyboard[0][1].Data == "insp_list:2"
	})).Return(nil)

	require.NoError(t, f.handler.handleInspirationCallback(ctx, callbackUpdate("cb-1", "insp_list:1")))
	f.assertExpectations(t)
}

func TestInspirationCallback_ListEmpty(t *testing.T) {
	f := newFixture()
	f.expectAnswer("cb-1")
	f.inspirations.On("Page", mock.Anything, testUserID, 0).
		Return(domain.Page[domain.Inspiration]{PageSize: 5}, nil)
	f.expectSend("You haven’t saved any inspirations yet 🎀")

	require.NoError(t, f.handler.handleInspirationCallback(context.Background(), callbackUpdate("cb-1", ActInspList)))
	f.assertExpectations(t)
}

func TestInspirationCallback_InvalidPageIgnored(t *testing.T) {
	f := newFixture()
	f.expectAnswer("cb-1")

	require.NoError(t, f.handler.handleInspirationCallback(context.Background(), callbackUpdate("cb-1", "insp_list:-3")))
	f.inspirations.AssertNotCalled(t, "Page", mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestInspirationCallback_View(t *testing.T) {
	f := newFixture()
	insp := testutil.NewTestInspiration(testInspirationID, testUserID, "sunset")
	insp.Favorite = true

	f.expectAnswer("cb-1")
	f.inspirations.On("GetByID", mock.Anything, testUserID, testInspirationID).Return(insp, nil)
	f.msg.On("SendPhoto", mock.Anything, testChatID, insp.ImageFileID, "sunset",
		singleMarkup(testInspirationID, true)).Return(nil)

	require.NoError(t, f.handler.handleInspirationCallback(context.Background(),
		callbackUpdate("cb-1", "insp_view:"+testInspirationID)))
	f.assertExpectations(t)
}

func TestInspirationCallback_ToggleFavorite(t *testing.T) {
	f := newFixture()
	u := callbackUpdate("cb-1", "insp_fav:"+testInspirationID)
	u.Callback.MessageID = 77

	f.expectAnswer("cb-1")
	f.inspirations.On("ToggleFavorite", mock.Anything, testUserID, testInspirationID).Return(true, nil)
	f.msg.On("EditMarkup", mock.Anything, testChatID, 77, singleMarkup(testInspirationID, true)).Return(nil)

	require.NoError(t, f.handler.handleInspirationCallback(context.Background(), u))
	f.assertExpectations(t)
}

func TestInspirationCallback_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("confirm first", func(t *testing.T) {
		f := newFixture()
		f.expectAnswer("cb-1")
		f.msg.On("Send", mock.Anything, testChatID, "Are you sure?", deleteConfirmMarkup("E1")).Return(nil)

		require.NoError(t, f.handler.handleInspirationCallback(ctx, callbackUpdate("cb-1", "insp_delete_confirm:E1")))
		f.inspirations.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("deletes", func(t *testing.T) {
		f := newFixture()
		f.expectAnswer("cb-1")
		f.inspirations.On("Delete", mock.Anything, testUserID, "E1").Return(nil)
		f.expectSend("🗑 Deleted.")

		require.NoError(t, f.handler.handleInspirationCallback(ctx, callbackUpdate("cb-1", "insp_delete:E1")))
		f.assertExpectations(t)
	})

	t.Run("already gone", func(t *testing.T) {
		f := newFixture()
		f.expectAnswer("cb-1")
		f.inspirations.On("Delete", mock.Anything, testUserID, "E1").Return(domain.ErrNotFound)
		f.expectSend(inspirationNotFoundText)

		require.NoError(t, f.handler.handleInspirationCallback(ctx, callbackUpdate("cb-1", "insp_delete:E1")))
		f.assertExpectations(t)
	})

	t.Run("missing id", func(t *testing.T) {
		f := newFixture()
		f.expectAnswer("cb-1")

		require.NoError(t, f.handler.handleInspirationCallback(ctx, callbackUpdate("cb-1", ActInspDelete)))
		f.assertExpectations(t)
	})
}

func TestInspirationsCommand(t *testing.T) {
	f := newFixture()
	f.msg.On("Send", mock.Anything, testChatID, "🎀 Inspirations\n\nSave images + captions for later inspiration.",
		inspirationsMenuMarkup()).Return(nil)

	require.NoError(t, f.dispatcher(t).Dispatch(context.Background(), textUpdate("/Inspirations")))
	f.assertExpectations(t)
}

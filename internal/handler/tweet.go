package handler

import (
	"net/http"

	"github.com/Payphone-Digital/videotube/internal/constants"
	"github.com/Payphone-Digital/videotube/internal/dto"
	ctxutil "github.com/Payphone-Digital/videotube/pkg/context"
	"github.com/gin-gonic/gin"
)

type TweetHandler struct {
	tweets TweetService
}

func NewTweetHandler(tweets TweetService) *TweetHandler {
	return &TweetHandler{tweets: tweets}
}

func (h *TweetHandler) Create(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CreateTweet")

	var req dto.TweetRequest
	if !bindJSON(ctx, c, &req) {
		return
	}

	tweet, err := h.tweets.Create(ctx, currentUserID(c), req.Content)
	if err != nil {
		respondError(ctx, c, err, "CreateTweet")
		return
	}

	respond(c, http.StatusCreated, tweet, constants.MsgResourceCreated)
}

func (h *TweetHandler) ListByUser(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListUserTweets")

	userID, valid := parseID(ctx, c, "userId")
	if !valid {
		return
	}

	tweets, err := h.tweets.ListByUser(ctx, userID)
	if err != nil {
		respondError(ctx, c, err, "ListUserTweets")
		return
	}

	respond(c, http.StatusOK, tweets, constants.MsgResourceFetched)
}

func (h *TweetHandler) Update(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateTweet")

	tweetID, valid := parseID(ctx, c, "tweetId")
	if !valid {
		return
	}

	var req dto.TweetRequest
	if !bindJSON(ctx, c, &req) {
		return
	}

	tweet, err := h.tweets.Update(ctx, currentUserID(c), tweetID, req.Content)
	if err != nil {
		respondError(ctx, c, err, "UpdateTweet")
		return
	}

	respond(c, http.StatusOK, tweet, constants.MsgResourceUpdated)
}

func (h *TweetHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeleteTweet")

	tweetID, valid := parseID(ctx, c, "tweetId")
	if !valid {
		return
	}

	if err := h.tweets.Delete(ctx, currentUserID(c), tweetID); err != nil {
		respondError(ctx, c, err, "DeleteTweet")
		return
	}

	respond(c, http.StatusOK, gin.H{}, constants.MsgResourceDeleted)
}

// Package handlers はGinのHTTPハンドラーを提供します。
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ContextUserIDKey は認証ミドルウェアがユーザーIDを格納するコンテキストキーです。
const ContextUserIDKey = "user_id"

// ContextUserEmailKey は認証ミドルウェアがメールアドレスを格納するコンテキストキーです。
const ContextUserEmailKey = "user_email"

// validationErrorResponse はバインディングエラーを400レスポンスに変換します。
// validatorのエラーはフィールドごとのissueリストに展開します。
// 配列ボディ（reorder）の要素ごとのエラーはSliceValidationErrorで届くため、
// 要素のインデックス付きで展開します。
func validationErrorResponse(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation Error", "errors": fieldIssues(verrs, -1)})
		return
	}

	var serrs binding.SliceValidationError
	if errors.As(err, &serrs) {
		var issues []gin.H
		for i, elemErr := range serrs {
			if errors.As(elemErr, &verrs) {
				issues = append(issues, fieldIssues(verrs, i)...)
			}
		}
		if len(issues) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation Error", "errors": issues})
			return
		}
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data in body."})
}

// fieldIssues はvalidatorのエラーをフィールドごとのissueに変換します。
// indexが0以上の場合は配列要素の位置を付与します。
func fieldIssues(verrs validator.ValidationErrors, index int) []gin.H {
	issues := make([]gin.H, 0, len(verrs))
	for _, fe := range verrs {
		issue := gin.H{
			"field":   fe.Field(),
			"message": fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
		}
		if index >= 0 {
			issue["index"] = index
		}
		issues = append(issues, issue)
	}
	return issues
}

// currentUserID はコンテキストから認証済みユーザーIDを取り出します。
func currentUserID(c *gin.Context) (string, bool) {
	val, exists := c.Get(ContextUserIDKey)
	if !exists {
		return "", false
	}
	userID, ok := val.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

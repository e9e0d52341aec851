package integration

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 流通模块集成测试
//
// 场景覆盖:
// 1. 编目 → 注册会员 → 借出 → 归还 完整闭环
// 2. 可借副本耗尽后借出被拒
// 3. 重复归还被拒
// 4. 未登录访问被拒

// TestCirculationFlow 借还完整流程
func TestCirculationFlow(t *testing.T) {
	RequireServer(t)

	_, token := RegisterTestStaff(t, "circ_staff")
	bookID := AddTestBook(t, token, "《Go语言实战》", 2)
	memberID := RegisterTestMember(t, token, "流通测试会员")

	var loanID uint

	t.Run("借出图书", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/loans", map[string]interface{}{
			"book_id":   bookID,
			"member_id": memberID,
		}, token)
		require.Equal(t, 0, resp.Code, "借出失败: %s", resp.Message)

		var data LoanData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.NotZero(t, data.LoanID)
		assert.Equal(t, bookID, data.BookID)
		assert.NotEmpty(t, data.DueAt, "应返回应还日")
		loanID = data.LoanID
	})

	t.Run("借出后可借副本减少", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, bookID), token)
		require.Equal(t, 0, resp.Code)

		var data BookData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, 2, data.TotalCopies)
		assert.Equal(t, 1, data.AvailableCopies)
	})

	t.Run("归还图书", func(t *testing.T) {
		resp := PostJSON(t, fmt.Sprintf("%s/loans/%d/return", BaseURL, loanID), nil, token)
		require.Equal(t, 0, resp.Code, "归还失败: %s", resp.Message)

		var data LoanData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.NotEmpty(t, data.ReturnedAt)
		assert.Equal(t, int64(0), data.FineCents, "未逾期不应产生罚金")
	})

	t.Run("重复归还被拒", func(t *testing.T) {
		resp := PostJSON(t, fmt.Sprintf("%s/loans/%d/return", BaseURL, loanID), nil, token)
		assert.NotEqual(t, 0, resp.Code, "重复归还应该失败")
	})

	t.Run("归还后可借副本恢复", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, bookID), token)
		require.Equal(t, 0, resp.Code)

		var data BookData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, 2, data.AvailableCopies)
	})

	t.Run("会员借阅历史", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/members/%d/loans", BaseURL, memberID), token)
		require.Equal(t, 0, resp.Code)

		var records []map[string]interface{}
		require.NoError(t, json.Unmarshal(resp.Data, &records))
		assert.Len(t, records, 1)
	})
}

// TestIssueExhaustsCopies 可借副本耗尽
func TestIssueExhaustsCopies(t *testing.T) {
	RequireServer(t)

	_, token := RegisterTestStaff(t, "exhaust_staff")
	bookID := AddTestBook(t, token, "《单本馆藏》", 1)
	member1 := RegisterTestMember(t, token, "会员甲")
	member2 := RegisterTestMember(t, token, "会员乙")

	resp := PostJSON(t, BaseURL+"/loans", map[string]interface{}{
		"book_id":   bookID,
		"member_id": member1,
	}, token)
	require.Equal(t, 0, resp.Code, "第一次借出应该成功: %s", resp.Message)

	resp = PostJSON(t, BaseURL+"/loans", map[string]interface{}{
		"book_id":   bookID,
		"member_id": member2,
	}, token)
	assert.NotEqual(t, 0, resp.Code, "无可借副本时借出应该失败")
}

// TestDeactivatedMemberCannotBorrow 停用会员不能借书
func TestDeactivatedMemberCannotBorrow(t *testing.T) {
	RequireServer(t)

	_, token := RegisterTestStaff(t, "deact_staff")
	bookID := AddTestBook(t, token, "《停用测试》", 1)
	memberID := RegisterTestMember(t, token, "待停用会员")

	resp := DeleteJSON(t, fmt.Sprintf("%s/members/%d", BaseURL, memberID), token)
	require.Equal(t, 0, resp.Code, "停用失败: %s", resp.Message)

	resp = PostJSON(t, BaseURL+"/loans", map[string]interface{}{
		"book_id":   bookID,
		"member_id": memberID,
	}, token)
	assert.NotEqual(t, 0, resp.Code, "停用会员借出应该失败")

	// 停用后记录仍可查询
	resp = GetJSON(t, fmt.Sprintf("%s/members/%d", BaseURL, memberID), token)
	require.Equal(t, 0, resp.Code)
	var data MemberData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "inactive", data.Status)
}

// TestUnauthenticatedRejected 未登录访问被拒
func TestUnauthenticatedRejected(t *testing.T) {
	RequireServer(t)

	resp := GetJSON(t, BaseURL+"/books", "")
	assert.NotEqual(t, 0, resp.Code, "未登录应该被拒绝")
}

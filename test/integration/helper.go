package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试辅助工具
// 这些测试需要一个已启动的服务实例(含MySQL/Redis)，
// 服务未运行时整组测试跳过。

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// ServerAddr 服务地址(连通性探测用)
	ServerAddr = "localhost:8080"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// RequireServer 服务未启动时跳过测试
func RequireServer(t *testing.T) {
	t.Helper()
	conn, err := net.DialTimeout("tcp", ServerAddr, 2*time.Second)
	if err != nil {
		t.Skipf("服务未启动(%s)，跳过集成测试: %v", ServerAddr, err)
	}
	conn.Close()
}

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// LoginData 登录响应数据
type LoginData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// BookData 图书响应数据
type BookData struct {
	ID              uint   `json:"id"`
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
}

// MemberData 会员响应数据
type MemberData struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	MembershipNumber string `json:"membershipNumber"`
	Status           string `json:"status"`
}

// LoanData 借阅响应数据
type LoanData struct {
	LoanID     uint   `json:"loan_id"`
	BookID     uint   `json:"book_id"`
	MemberID   uint   `json:"member_id"`
	IssuedAt   string `json:"issued_at"`
	DueAt      string `json:"due_at"`
	ReturnedAt string `json:"returned_at"`
	FineCents  int64  `json:"fine_cents"`
	FineYuan   string `json:"fine_yuan"`
}

// doJSON 发送请求并解析统一响应
func doJSON(t *testing.T, method, url string, data interface{}, token string) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(raw, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(raw))

	return &result
}

// PostJSON 发送POST请求并解析JSON响应
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, "POST", url, data, token)
}

// GetJSON 发送GET请求并解析JSON响应
func GetJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, "GET", url, nil, token)
}

// PutJSON 发送PUT请求并解析JSON响应
func PutJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, "PUT", url, data, token)
}

// DeleteJSON 发送DELETE请求并解析JSON响应
func DeleteJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, "DELETE", url, nil, token)
}

// GenerateTestEmail 生成唯一的测试邮箱
func GenerateTestEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, time.Now().UnixNano())
}

// GenerateTestISBN 生成唯一的测试ISBN(978+10位数字)
func GenerateTestISBN() string {
	timestamp := time.Now().UnixNano()
	return fmt.Sprintf("978%010d", timestamp%10000000000)
}

// RegisterTestStaff 注册测试馆员并返回Token
func RegisterTestStaff(t *testing.T, name string) (email string, token string) {
	t.Helper()

	email = GenerateTestEmail(name)
	registerReq := map[string]string{
		"name":     name,
		"email":    email,
		"password": "Test1234",
	}

	registerResp := PostJSON(t, BaseURL+"/staff/register", registerReq, "")
	require.Equal(t, 0, registerResp.Code, "馆员注册失败: %s", registerResp.Message)

	loginReq := map[string]string{
		"email":    email,
		"password": "Test1234",
	}

	loginResp := PostJSON(t, BaseURL+"/staff/login", loginReq, "")
	require.Equal(t, 0, loginResp.Code, "馆员登录失败: %s", loginResp.Message)

	var loginData LoginData
	err := json.Unmarshal(loginResp.Data, &loginData)
	require.NoError(t, err, "解析登录响应失败")

	return email, loginData.AccessToken
}

// AddTestBook 编目测试图书并返回图书ID
func AddTestBook(t *testing.T, token, title string, copies int) uint {
	t.Helper()

	bookReq := map[string]interface{}{
		"isbn":         GenerateTestISBN(),
		"title":        title,
		"author":       "测试作者",
		"publisher":    "测试出版社",
		"category":     "测试",
		"total_copies": copies,
	}

	bookResp := PostJSON(t, BaseURL+"/books", bookReq, token)
	require.Equal(t, 0, bookResp.Code, "图书编目失败: %s", bookResp.Message)

	var bookData BookData
	err := json.Unmarshal(bookResp.Data, &bookData)
	require.NoError(t, err, "解析图书响应失败")

	return bookData.ID
}

// RegisterTestMember 注册测试会员并返回会员ID
func RegisterTestMember(t *testing.T, token, name string) uint {
	t.Helper()

	memberReq := map[string]string{
		"name":  name,
		"email": GenerateTestEmail(name),
	}

	memberResp := PostJSON(t, BaseURL+"/members", memberReq, token)
	require.Equal(t, 0, memberResp.Code, "会员注册失败: %s", memberResp.Message)

	var memberData MemberData
	err := json.Unmarshal(memberResp.Data, &memberData)
	require.NoError(t, err, "解析会员响应失败")
	require.NotEmpty(t, memberData.MembershipNumber, "应签发借书证号")

	return memberData.ID
}

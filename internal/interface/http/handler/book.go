package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/library/internal/application/book"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	addBookUseCase     *appbook.AddBookUseCase
	manageBooksUseCase *appbook.ManageBooksUseCase
	exportBooksUseCase *appbook.ExportBooksUseCase
	lookupBookUseCase  *appbook.LookupBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	addBookUseCase *appbook.AddBookUseCase,
	manageBooksUseCase *appbook.ManageBooksUseCase,
	exportBooksUseCase *appbook.ExportBooksUseCase,
	lookupBookUseCase *appbook.LookupBookUseCase,
) *BookHandler {
	return &BookHandler{
		addBookUseCase:     addBookUseCase,
		manageBooksUseCase: manageBooksUseCase,
		exportBooksUseCase: exportBooksUseCase,
		lookupBookUseCase:  lookupBookUseCase,
	}
}

// AddBook 图书编目
// @Summary      图书编目
// @Description  新书入馆编目，auto_fill=true时从外部数据源补全空缺字段
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "ISBN已存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) AddBook(c *gin.Context) {
	// 1. 参数绑定与验证
	var req dto.AddBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	// 2. 调用应用层用例
	result, err := h.addBookUseCase.Execute(c.Request.Context(), appbook.AddBookRequest{
		ISBN:            req.ISBN,
		Title:           req.Title,
		Author:          req.Author,
		Publisher:       req.Publisher,
		PublicationYear: req.PublicationYear,
		Category:        req.Category,
		Description:     req.Description,
		CoverImageURL:   req.CoverImageURL,
		PageCount:       req.PageCount,
		Language:        req.Language,
		TotalCopies:     req.TotalCopies,
		ShelfLocation:   req.ShelfLocation,
		AutoFill:        req.AutoFill,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToBookResponse(result))
}

// GetBook 获取图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的图书ID")
		return
	}

	result, err := h.manageBooksUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToBookResponse(result))
}

// GetBookByISBN 按ISBN获取图书
// @Summary      按ISBN查询馆藏
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        isbn path string true "ISBN"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/isbn/{isbn} [get]
func (h *BookHandler) GetBookByISBN(c *gin.Context) {
	result, err := h.manageBooksUseCase.GetByISBN(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToBookResponse(result))
}

// ListBooks 图书列表/检索
// @Summary      图书列表
// @Description  q非空时按field检索(title/author/isbn/category/any，默认title)
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        q query string false "检索词"
// @Param        field query string false "检索字段" Enums(title, author, isbn, category, any)
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	term := c.Query("q")

	var (
		found []*book.Book
		err   error
	)
	if term != "" {
		found, err = h.manageBooksUseCase.Search(c.Request.Context(), term, c.Query("field"))
	} else {
		found, err = h.manageBooksUseCase.List(c.Request.Context())
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToBookResponses(found))
}

// UpdateBook 更新图书
// @Summary      更新图书
// @Description  部分更新，请求体中未出现的字段保持原值
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "待更新字段"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的图书ID")
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	if err := h.manageBooksUseCase.Update(c.Request.Context(), id, req.ToUpdateParams()); err != nil {
		response.Error(c, err)
		return
	}

	// 更新后返回最新状态
	result, err := h.manageBooksUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToBookResponse(result))
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Description  存在借阅记录或书评的图书禁止删除
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "存在关联记录"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的图书ID")
		return
	}

	if err := h.manageBooksUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// PopularBooks 热门图书
// @Summary      热门图书排行
// @Description  按历史借出次数降序，默认前5
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "返回数量" default(5)
// @Success      200 {object} response.Response{data=[]dto.PopularBookResponse}
// @Router       /api/v1/books/popular [get]
func (h *BookHandler) PopularBooks(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	result, err := h.manageBooksUseCase.MostBorrowed(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]*dto.PopularBookResponse, len(result))
	for i, p := range result {
		items[i] = &dto.PopularBookResponse{
			BookResponse: *dto.ToBookResponse(&p.Book),
			BorrowCount:  p.BorrowCount,
		}
	}
	response.Success(c, items)
}

// ExportBooks 导出馆藏目录
// @Summary      导出馆藏目录(CSV)
// @Tags         图书
// @Produce      text/csv
// @Security     BearerAuth
// @Success      200 {string} string "CSV文件"
// @Router       /api/v1/books/export [get]
func (h *BookHandler) ExportBooks(c *gin.Context) {
	filename := fmt.Sprintf("books-%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.exportBooksUseCase.Execute(c.Request.Context(), c.Writer); err != nil {
		// 响应头已发出，此处只能记录失败
		_ = c.Error(err)
	}
}

// LookupBook 外部书目查询
// @Summary      按ISBN查询外部书目数据
// @Description  依次查询Google Books与Open Library，未命中时data为空
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        isbn path string true "ISBN"
// @Success      200 {object} response.Response{data=dto.LookupBookResponse}
// @Failure      400 {object} response.Response "ISBN格式错误"
// @Failure      503 {object} response.Response "外部服务未启用"
// @Router       /api/v1/books/lookup/{isbn} [get]
func (h *BookHandler) LookupBook(c *gin.Context) {
	meta, err := h.lookupBookUseCase.Execute(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if meta == nil {
		response.Success(c, nil)
		return
	}

	response.Success(c, &dto.LookupBookResponse{
		ISBN:            meta.ISBN,
		Title:           meta.Title,
		Authors:         meta.Authors,
		Publisher:       meta.Publisher,
		PublicationYear: meta.PublicationYear,
		Category:        meta.Category,
		Description:     meta.Description,
		CoverImageURL:   meta.CoverImageURL,
		PageCount:       meta.PageCount,
		Language:        meta.Language,
		Source:          meta.Source,
	})
}

// SearchMetadata 外部书目检索
// @Summary      按关键词检索外部书目数据
// @Description  编目前预览，自由文本检索(书名/作者)，未命中时data为空数组
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        q query string true "检索词"
// @Param        limit query int false "返回数量" default(10)
// @Success      200 {object} response.Response{data=[]dto.LookupBookResponse}
// @Failure      503 {object} response.Response "外部服务未启用"
// @Router       /api/v1/books/lookup [get]
func (h *BookHandler) SearchMetadata(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.ErrorWithCode(c, 40900, "检索词不能为空")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	results, err := h.lookupBookUseCase.Search(c.Request.Context(), query, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]*dto.LookupBookResponse, len(results))
	for i, meta := range results {
		items[i] = &dto.LookupBookResponse{
			ISBN:            meta.ISBN,
			Title:           meta.Title,
			Authors:         meta.Authors,
			Publisher:       meta.Publisher,
			PublicationYear: meta.PublicationYear,
			Category:        meta.Category,
			Description:     meta.Description,
			CoverImageURL:   meta.CoverImageURL,
			PageCount:       meta.PageCount,
			Language:        meta.Language,
			Source:          meta.Source,
		}
	}
	response.Success(c, items)
}

// parseUintParam 解析路径中的数字ID
func parseUintParam(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

// Package apitest runs an in-process double of the storefront backend
// (REST data store plus signing endpoint) for service and integration
// tests. Rows live in memory; passwords are stored bcrypt-hashed the way
// the real backend stores them.
package apitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ikkim/shopit-client/internal/app/model"
)

type storedUser struct {
	model.User
	passwordHash []byte
}

// Server is the fake backend. URL serves the REST surface; SigningURL is
// the pre-signed URL endpoint, issuing URLs that point back at the
// server's own blob routes.
type Server struct {
	URL        string
	SigningURL string

	mu        sync.Mutex
	users     map[string]*storedUser // keyed by email
	products  map[string]model.Product
	cartItems map[string]model.CartItem
	orders    map[string]model.Order
	questions map[string]model.Question
	blobs     map[string][]byte
	blobTypes map[string]string

	unauthorized bool
	failStatus   int
	failMessage  string

	// LastAuthHeader records the Authorization header of the most
	// recent request against the REST surface.
	LastAuthHeader string

	httpServer *httptest.Server
}

// New starts the fake backend and shuts it down with the test.
func New(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{
		users:     make(map[string]*storedUser),
		products:  make(map[string]model.Product),
		cartItems: make(map[string]model.CartItem),
		orders:    make(map[string]model.Order),
		questions: make(map[string]model.Question),
		blobs:     make(map[string][]byte),
		blobTypes: make(map[string]string),
	}

	router := gin.New()
	router.Use(s.intercept)

	router.GET("/products", s.listProducts)
	router.GET("/products/:id", s.getProduct)

	router.POST("/users", s.createUser)
	router.GET("/users", s.queryUsers)
	router.PATCH("/users/:email", s.patchUser)
	router.DELETE("/users/:email", s.deleteUser)

	router.GET("/cart", s.listCart)
	router.POST("/cart", s.createCartItem)
	router.PATCH("/cart/:id", s.patchCartItem)
	router.DELETE("/cart/:id", s.deleteCartItem)

	router.POST("/orders", s.createOrder)
	router.GET("/orders", s.listOrders)
	router.GET("/orders/:id", s.getOrder)

	router.GET("/questions", s.listQuestions)
	router.GET("/questions/:id", s.getQuestion)
	router.POST("/questions", s.createQuestion)
	router.PUT("/questions/:id", s.putQuestion)
	router.DELETE("/questions/:id", s.deleteQuestion)

	router.GET("/sign", s.sign)
	router.PUT("/blob/:key", s.putBlob)
	router.GET("/blob/:key", s.getBlob)

	s.httpServer = httptest.NewServer(router)
	s.URL = s.httpServer.URL
	s.SigningURL = s.httpServer.URL + "/sign"
	t.Cleanup(s.httpServer.Close)
	return s
}

// SetUnauthorized makes every REST request answer 401 until reset.
func (s *Server) SetUnauthorized(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unauthorized = on
}

// FailNext makes the next REST request answer with the given status and
// message body, then resets.
func (s *Server) FailNext(status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = status
	s.failMessage = message
}

// SeedProduct inserts a catalog row, assigning an id when absent.
func (s *Server) SeedProduct(p model.Product) model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	s.products[p.ID] = p
	return p
}

// MutateProduct edits a catalog row in place (for snapshot tests).
func (s *Server) MutateProduct(id string, fn func(*model.Product)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.products[id]
	fn(&p)
	s.products[id] = p
}

// CartRowCount reports the number of cart rows held for an email.
func (s *Server) CartRowCount(email string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, item := range s.cartItems {
		if item.Email == email {
			n++
		}
	}
	return n
}

func (s *Server) intercept(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/blob/") || c.Request.URL.Path == "/sign" {
		c.Next()
		return
	}

	s.mu.Lock()
	s.LastAuthHeader = c.GetHeader("Authorization")
	unauthorized := s.unauthorized
	failStatus, failMessage := s.failStatus, s.failMessage
	s.failStatus, s.failMessage = 0, ""
	s.mu.Unlock()

	if unauthorized {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "로그인이 필요합니다."})
		return
	}
	if failStatus != 0 {
		if failMessage != "" {
			c.AbortWithStatusJSON(failStatus, gin.H{"message": failMessage})
		} else {
			c.AbortWithStatus(failStatus)
		}
		return
	}
	c.Next()
}

func (s *Server) listProducts(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		if category := c.Query("category"); category != "" && p.Category != category {
			continue
		}
		if q := c.Query("q"); q != "" && !strings.Contains(p.Name, q) && !strings.Contains(p.Description, q) {
			continue
		}
		if c.Query("isPopular") == "true" && !p.IsPopular {
			continue
		}
		if c.Query("isNew") == "true" && !p.IsNew {
			continue
		}
		out = append(out, p)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getProduct(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "상품을 찾을 수 없습니다."})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) createUser(c *gin.Context) {
	var user model.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "입력값이 올바르지 않습니다."})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Email]; exists {
		c.JSON(http.StatusConflict, gin.H{"message": "이미 사용 중인 이메일입니다."})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "서버 오류가 발생했습니다."})
		return
	}

	user.ID = uuid.New().String()
	user.Password = ""
	s.users[user.Email] = &storedUser{User: user, passwordHash: hash}

	c.JSON(http.StatusCreated, user)
}

func (s *Server) queryUsers(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := c.Query("email")
	password, withPassword := c.GetQuery("password")

	out := make([]model.User, 0, 1)
	for _, u := range s.users {
		if email != "" && u.Email != email {
			continue
		}
		if withPassword {
			if bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)) != nil {
				continue
			}
		}
		out = append(out, u.User)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) patchUser(c *gin.Context) {
	var patch struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "입력값이 올바르지 않습니다."})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[c.Param("email")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "사용자를 찾을 수 없습니다."})
		return
	}

	if patch.Username != "" {
		u.Username = patch.Username
	}
	if patch.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(patch.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "서버 오류가 발생했습니다."})
			return
		}
		u.passwordHash = hash
	}
	u.UpdatedAt = time.Now()
	c.JSON(http.StatusOK, u.User)
}

func (s *Server) deleteUser(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := c.Param("email")
	if _, ok := s.users[email]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "사용자를 찾을 수 없습니다."})
		return
	}
	delete(s.users, email)
	c.Status(http.StatusNoContent)
}

func (s *Server) listCart(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := c.Query("email")
	out := make([]model.CartItem, 0)
	for _, item := range s.cartItems {
		if email == "" || item.Email == email {
			out = append(out, item)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createCartItem(c *gin.Context) {
	var item model.CartItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "입력값이 올바르지 않습니다."})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = uuid.New().String()
	s.cartItems[item.ID] = item
	c.JSON(http.StatusCreated, item)
}

func (s *Server) patchCartItem(c *gin.Context) {
	var patch struct {
		Quantity  *int      `json:"quantity"`
		UpdatedAt time.Time `json:"updatedAt"`
	}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "입력값이 올바르지 않습니다."})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.cartItems[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "장바구니 항목을 찾을 수 없습니다."})
		return
	}

	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if !patch.UpdatedAt.IsZero() {
		item.UpdatedAt = patch.UpdatedAt
	}
	s.cartItems[item.ID] = item
	c.JSON(http.StatusOK, item)
}

func (s *Server) deleteCartItem(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	if _, ok := s.cartItems[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "장바구니 항목을 찾을 수 없습니다."})
		return
	}
	delete(s.cartItems, id)
	c.Status(http.StatusNoContent)
}

func (s *Server) createOrder(c *gin.Context) {
	var order model.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "입력값이 올바르지 않습니다."})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order.ID = uuid.New().String()
	s.orders[order.ID] = order
	c.JSON(http.StatusCreated, order)
}

func (s *Server) listOrders(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := c.Query("userEmail")
	out := make([]model.Order, 0)
	for _, order := range s.orders {
		if email == "" || order.UserEmail == email {
			out = append(out, order)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getOrder(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "주문을 찾을 수 없습니다."})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) listQuestions(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := c.Query("q")
	out := make([]model.Question, 0)
	for _, question := range s.questions {
		if q != "" && !strings.Contains(question.Title, q) && !strings.Contains(question.Content, q) {
			continue
		}
		out = append(out, question)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getQuestion(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	question, ok := s.questions[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "게시글을 찾을 수 없습니다."})
		return
	}
	c.JSON(http.StatusOK, question)
}

func (s *Server) createQuestion(c *gin.Context) {
	var question model.Question
	if err := c.ShouldBindJSON(&question); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "입력값이 올바르지 않습니다."})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	question.ID = uuid.New().String()
	s.questions[question.ID] = question
	c.JSON(http.StatusCreated, question)
}

func (s *Server) putQuestion(c *gin.Context) {
	var question model.Question
	if err := c.ShouldBindJSON(&question); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "입력값이 올바르지 않습니다."})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	if _, ok := s.questions[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "게시글을 찾을 수 없습니다."})
		return
	}
	question.ID = id
	s.questions[id] = question
	c.JSON(http.StatusOK, question)
}

func (s *Server) deleteQuestion(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	if _, ok := s.questions[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "게시글을 찾을 수 없습니다."})
		return
	}
	delete(s.questions, id)
	c.Status(http.StatusNoContent)
}

// sign emulates the external signing endpoint: a proxied envelope whose
// body is a JSON string containing the issued URL.
func (s *Server) sign(c *gin.Context) {
	filename := c.Query("filename")
	if filename == "" {
		c.JSON(http.StatusOK, gin.H{"statusCode": 400, "body": `{}`})
		return
	}

	signedURL := fmt.Sprintf("%s/blob/%s", s.URL, filename)
	if c.Query("mode") != "get" {
		s.mu.Lock()
		s.blobTypes[filename] = c.Query("contentType")
		s.mu.Unlock()
	}

	inner, _ := json.Marshal(gin.H{"url": signedURL})
	c.JSON(http.StatusOK, gin.H{"statusCode": 200, "body": string(inner)})
}

func (s *Server) putBlob(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[c.Param("key")] = data
	c.Status(http.StatusOK)
}

func (s *Server) getBlob(c *gin.Context) {
	s.mu.Lock()
	data, ok := s.blobs[c.Param("key")]
	contentType := s.blobTypes[c.Param("key")]
	s.mu.Unlock()

	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, data)
}

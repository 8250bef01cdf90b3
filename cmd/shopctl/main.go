package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/ikkim/shopit-client/config"
	"github.com/ikkim/shopit-client/internal/api"
	"github.com/ikkim/shopit-client/internal/app/model"
	"github.com/ikkim/shopit-client/internal/app/service"
	"github.com/ikkim/shopit-client/internal/app/store"
	"github.com/ikkim/shopit-client/internal/export"
	"github.com/ikkim/shopit-client/internal/storage"
	"github.com/ikkim/shopit-client/pkg/logger"
)

// shopctl is the terminal "view" over the storefront client: it wires
// the stores and services together and surfaces their messages.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logger.Initialize(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		EnableColor: true,
	})

	app, err := buildApp(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize client", err)
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	if err := app.run(context.Background(), os.Args[1], os.Args[2:]); err != nil {
		// Messages out of the service layer are already user-facing.
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

type app struct {
	sessions  *store.SessionStore
	users     service.UserService
	products  service.ProductService
	cart      service.CartService
	orders    service.OrderService
	questions service.QuestionService
	files     service.FileService
}

func buildApp(cfg *config.Config) (*app, error) {
	var persister store.Persister
	switch cfg.Session.Backend {
	case "redis":
		p, err := store.NewRedisPersister(&cfg.Redis)
		if err != nil {
			return nil, err
		}
		persister = p
	default:
		persister = store.NewFilePersister(cfg.Session.FilePath)
	}

	sessions := store.NewSessionStore(persister)
	if err := sessions.Hydrate(); err != nil {
		logger.Warn("Could not restore previous session", map[string]interface{}{
			"error": err.Error(),
		})
	}

	client, err := api.NewClient(api.Config{
		BaseURL: cfg.API.BaseURL,
		Version: cfg.API.Version,
		Timeout: cfg.API.Timeout,
	})
	if err != nil {
		return nil, err
	}
	client.SetTokenSource(sessions)
	client.SetUnauthorizedHook(sessions.Clear)

	var signer service.Signer
	if cfg.Signing.EndpointURL != "" {
		signer = service.NewEndpointSigner(cfg.Signing.EndpointURL, cfg.API.Timeout)
	} else {
		signer = storage.NewS3Signer(&cfg.S3)
	}

	productSvc := service.NewProductService(client)
	cartSvc := service.NewCartService(client, productSvc)

	return &app{
		sessions:  sessions,
		users:     service.NewUserService(client),
		products:  productSvc,
		cart:      cartSvc,
		orders:    service.NewOrderService(client, cartSvc),
		questions: service.NewQuestionService(client),
		files:     service.NewFileService(signer, cfg.API.Timeout),
	}, nil
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "signup":
		return a.signUp(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "logout":
		a.sessions.Clear()
		fmt.Println("로그아웃되었습니다.")
		return nil
	case "whoami":
		return a.whoami()
	case "profile":
		return a.profile(ctx, args)
	case "delete-account":
		return a.deleteAccount(ctx)
	case "products":
		return a.listProducts(ctx, args)
	case "cart":
		return a.cartCommand(ctx, args)
	case "checkout":
		return a.checkout(ctx, args)
	case "orders":
		return a.listOrders(ctx)
	case "export":
		return a.exportOrders(ctx, args)
	case "questions":
		return a.questionsCommand(ctx, args)
	case "upload":
		return a.upload(ctx, args)
	case "download":
		return a.download(ctx, args)
	default:
		usage()
		return fmt.Errorf("알 수 없는 명령입니다: %s", command)
	}
}

func (a *app) signUp(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: shopctl signup <username> <email> <password>")
	}
	username, email, password := args[0], args[1], args[2]

	if a.users.CheckEmailDuplicate(ctx, email) {
		return fmt.Errorf("이미 사용 중인 이메일입니다.")
	}

	user, err := a.users.SignUp(ctx, model.SignUpInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return err
	}
	fmt.Printf("회원가입이 완료되었습니다: %s\n", user.Email)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: shopctl login <email> <password>")
	}

	user, err := a.users.Login(ctx, model.Credentials{
		Email:    args[0],
		Password: args[1],
	})
	if err != nil {
		return err
	}

	a.sessions.Set(*user, "")
	fmt.Printf("로그인에 성공했습니다: %s\n", user.Username)
	return nil
}

func (a *app) whoami() error {
	session := a.sessions.Get()
	if !session.IsAuthenticated {
		fmt.Println("로그인되어 있지 않습니다.")
		return nil
	}
	fmt.Printf("%s <%s> (%s)\n", session.User.Username, session.User.Email, session.User.Role)
	return nil
}

func (a *app) profile(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: shopctl profile <username> [newPassword]")
	}

	patch := model.ProfileUpdate{Username: args[0]}
	if len(args) > 1 {
		patch.Password = args[1]
	}

	updated, err := a.users.UpdateProfile(ctx, a.currentEmail(), patch)
	if err != nil {
		return err
	}

	if err := a.sessions.Update(store.UserPatch{Username: &updated.Username}); err != nil {
		return err
	}
	fmt.Printf("회원정보가 수정되었습니다: %s\n", updated.Username)
	return nil
}

func (a *app) deleteAccount(ctx context.Context) error {
	if err := a.users.DeleteAccount(ctx, a.currentEmail()); err != nil {
		return err
	}
	a.sessions.Clear()
	fmt.Println("회원 탈퇴가 완료되었습니다.")
	return nil
}

func (a *app) listProducts(ctx context.Context, args []string) error {
	filter := model.ProductFilter{}
	if len(args) > 0 {
		filter.Query = args[0]
	}

	products, err := a.products.GetProducts(ctx, filter)
	if err != nil {
		return err
	}
	for _, p := range products {
		fmt.Printf("%s\t%s\t%d원\n", p.ID, p.Name, p.Price)
	}
	return nil
}

func (a *app) cartCommand(ctx context.Context, args []string) error {
	email := a.currentEmail()

	if len(args) == 0 || args[0] == "list" {
		items, err := a.cart.GetCartItems(ctx, email)
		if err != nil {
			return err
		}
		for _, item := range items {
			fmt.Printf("%s\t%s\tx%d\t%d원\n", item.ID, item.ProductName, item.Quantity, item.Price)
		}
		return nil
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: shopctl cart add <productID>")
		}
		item, err := a.cart.AddToCart(ctx, email, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("장바구니에 담았습니다: %s x%d\n", item.ProductName, item.Quantity)
		return nil
	case "rm":
		if len(args) < 2 {
			return fmt.Errorf("usage: shopctl cart rm <cartItemID>")
		}
		return a.cart.RemoveFromCart(ctx, email, args[1])
	case "qty":
		if len(args) < 3 {
			return fmt.Errorf("usage: shopctl cart qty <cartItemID> <quantity>")
		}
		quantity, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("수량이 올바르지 않습니다: %s", args[2])
		}
		_, err = a.cart.UpdateQuantity(ctx, email, args[1], quantity)
		return err
	default:
		return fmt.Errorf("usage: shopctl cart [list|add|rm|qty]")
	}
}

func (a *app) checkout(ctx context.Context, args []string) error {
	if len(args) < 4 {
		return fmt.Errorf("usage: shopctl checkout <recipient> <phone> <address> <detail> [cash]")
	}

	method := model.PaymentMethodCard
	if len(args) > 4 && args[4] == "cash" {
		method = model.PaymentMethodCash
	}

	order, err := a.orders.CheckoutCart(ctx, a.currentEmail(), model.ShippingAddress{
		Recipient:     args[0],
		Phone:         args[1],
		Address:       args[2],
		DetailAddress: args[3],
	}, method)
	if err != nil {
		return err
	}
	fmt.Printf("주문이 완료되었습니다: %s (%d원)\n", order.OrderNumber, order.OrderSummary.TotalAmount)
	return nil
}

func (a *app) listOrders(ctx context.Context) error {
	orders, err := a.orders.GetOrders(ctx, a.currentEmail())
	if err != nil {
		return err
	}
	for _, order := range orders {
		fmt.Printf("%s\t%s\t%s\t%d원\n",
			order.OrderNumber,
			order.OrderDate.Format("2006-01-02"),
			order.OrderStatus,
			order.OrderSummary.TotalAmount,
		)
	}
	return nil
}

func (a *app) exportOrders(ctx context.Context, args []string) error {
	path := "orders.xlsx"
	if len(args) > 0 {
		path = args[0]
	}

	orders, err := a.orders.GetOrders(ctx, a.currentEmail())
	if err != nil {
		return err
	}
	if err := export.WriteOrderHistory(path, orders); err != nil {
		return err
	}
	fmt.Printf("주문 내역을 저장했습니다: %s\n", path)
	return nil
}

func (a *app) questionsCommand(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "create":
			if len(args) < 3 {
				return fmt.Errorf("usage: shopctl questions create <title> <content>")
			}
			created, err := a.questions.CreateQuestion(ctx, service.QuestionInput{
				Title:   args[1],
				Content: args[2],
				Author:  a.currentEmail(),
			})
			if err != nil {
				return err
			}
			fmt.Printf("문의글이 등록되었습니다: %s\n", created.ID)
			return nil
		case "rm":
			if len(args) < 2 {
				return fmt.Errorf("usage: shopctl questions rm <questionID>")
			}
			return a.questions.DeleteQuestion(ctx, args[1])
		}
	}

	search := ""
	if len(args) > 0 {
		search = args[0]
	}

	questions, err := a.questions.GetQuestions(ctx, search)
	if err != nil {
		return err
	}
	for _, q := range questions {
		fmt.Printf("%s\t[%s]\t%s (%s)\n", q.ID, q.Status, q.Title, q.Author)
	}
	return nil
}

func (a *app) upload(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: shopctl upload <file> <contentType>")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("파일을 열 수 없습니다: %w", err)
	}
	defer f.Close()

	key, uploadURL, err := a.files.GetUploadURL(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	if err := a.files.Upload(ctx, uploadURL, args[1], f); err != nil {
		return err
	}
	fmt.Printf("업로드되었습니다: %s\n", key)
	return nil
}

func (a *app) download(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: shopctl download <key> <originalName> [destDir]")
	}

	destDir := "."
	if len(args) > 2 {
		destDir = args[2]
	}

	downloadURL, err := a.files.GetDownloadURL(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	path, err := a.files.Download(ctx, downloadURL, destDir, args[1])
	if err != nil {
		return err
	}
	fmt.Printf("다운로드되었습니다: %s\n", path)
	return nil
}

func (a *app) currentEmail() string {
	session := a.sessions.Get()
	if session.User == nil {
		return ""
	}
	return session.User.Email
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: shopctl <command>

  signup <username> <email> <password>
  login <email> <password>
  logout | whoami
  profile <username> [newPassword]
  delete-account
  products [query]
  cart [list|add <productID>|rm <id>|qty <id> <n>]
  checkout <recipient> <phone> <address> <detail> [cash]
  orders
  export [path.xlsx]
  questions [search] | questions create <title> <content> | questions rm <id>
  upload <file> <contentType>
  download <key> <originalName> [destDir]`)
}

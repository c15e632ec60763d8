package main

import (
	"context"
	"text/tabwriter"

	"github.com/octabyte/bm-gateway/api"
	"github.com/octabyte/bm-gateway/enums"
	"github.com/octabyte/bm-gateway/utils"
)

type loginCommand struct {
	app      *app
	Email    string `long:"email" required:"true" description:"Account email"`
	Password string `long:"password" required:"true" description:"Account password"`
}

func (c *loginCommand) Execute([]string) error {
	ctx := context.Background()
	client, err := c.app.api(ctx)
	if err != nil {
		return err
	}
	creds, err := client.Login(ctx, api.LoginInput{Email: c.Email, Password: c.Password})
	if err != nil {
		return err
	}
	c.app.printf("Signed in as %s (%s)\n", creds.User.Name, creds.User.Role)
	return nil
}

type signupCommand struct {
	app      *app
	Name     string `long:"name" required:"true"`
	Email    string `long:"email" required:"true"`
	Phone    string `long:"phone"`
	Password string `long:"password" required:"true"`
}

func (c *signupCommand) Execute([]string) error {
	ctx := context.Background()
	client, err := c.app.api(ctx)
	if err != nil {
		return err
	}
	creds, err := client.Signup(ctx, api.SignupInput{Name: c.Name, Email: c.Email, Phone: c.Phone, Password: c.Password})
	if err != nil {
		return err
	}
	c.app.printf("Welcome %s, your membership is %s\n", creds.User.Name, creds.User.MembershipStatus)
	return nil
}

type whoamiCommand struct {
	app *app
}

func (c *whoamiCommand) Execute([]string) error {
	ctx := context.Background()
	client, err := c.app.api(ctx)
	if err != nil {
		return err
	}
	me, err := client.Me(ctx)
	if err != nil {
		return err
	}
	c.app.printf("%s <%s>\nrole: %s\nmembership: %s\n", me.Name, me.Email, me.Role, me.MembershipStatus)
	return nil
}

type projectsCommand struct {
	app    *app
	Page   int    `long:"page" default:"1"`
	Limit  int    `long:"limit" default:"10"`
	Status string `long:"status" choice:"upcoming" choice:"ongoing" choice:"completed"`
}

func (c *projectsCommand) Execute([]string) error {
	ctx := context.Background()
	client, err := c.app.api(ctx)
	if err != nil {
		return err
	}
	projects, meta, err := client.ListProjects(ctx, api.ProjectQuery{Page: c.Page, Limit: c.Limit, Status: enums.ProjectStatus(c.Status)})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.app.out, 0, 4, 2, ' ', 0)
	c.app.printTo(w, "ID\tTITLE\tSTATUS\tBUDGET\tSTARTS\n")
	for _, p := range projects {
		c.app.printTo(w, "%s\t%s\t%s\t%.2f\t%s\n", p.ID, p.Title, p.Status, p.Budget, utils.FormatLocal(p.StartDate))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if meta != nil {
		c.app.printf("page %d of %d (%d projects)\n", meta.Page, meta.TotalPage, meta.Total)
	}
	return nil
}

type noticesCommand struct {
	app *app
}

func (c *noticesCommand) Execute([]string) error {
	ctx := context.Background()
	client, err := c.app.api(ctx)
	if err != nil {
		return err
	}
	notices, err := client.ListNotices(ctx)
	if err != nil {
		return err
	}
	for _, n := range notices {
		c.app.printf("[%s] %s\n  %s\n", utils.FormatLocal(n.CreatedAt), n.Title, n.Description)
	}
	return nil
}

type fundsCommand struct {
	app  *app
	Type string `long:"type" choice:"deposit" choice:"expense"`
}

func (c *fundsCommand) Execute([]string) error {
	ctx := context.Background()
	client, err := c.app.api(ctx)
	if err != nil {
		return err
	}
	entries, err := client.ListFundEntries(ctx, enums.FundEntryType(c.Type))
	if err != nil {
		return err
	}
	summary, err := client.FundSummary(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.app.out, 0, 4, 2, ' ', 0)
	c.app.printTo(w, "DATE\tTYPE\tAMOUNT\tPURPOSE\n")
	for _, e := range entries {
		c.app.printTo(w, "%s\t%s\t%.2f\t%s\n", utils.FormatLocal(e.RecordedAt), e.Type, e.Amount, e.Purpose)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	c.app.printf("deposits %.2f  expenses %.2f  balance %.2f\n", summary.TotalDeposit, summary.TotalExpense, summary.CurrentAmount)
	return nil
}

type payCommand struct {
	app           *app
	Method        string  `long:"method" required:"true" choice:"bkash" choice:"nagad" choice:"gateway"`
	Amount        float64 `long:"amount" required:"true"`
	SenderNumber  string  `long:"sender" description:"Wallet number the money was sent from"`
	TransactionID string  `long:"trx" description:"Wallet transaction id"`
}

func (c *payCommand) Execute([]string) error {
	ctx := context.Background()
	client, err := c.app.api(ctx)
	if err != nil {
		return err
	}

	method := enums.PaymentMethod(c.Method)
	if !method.Manual() {
		checkout, err := client.InitiateGatewayPayment(ctx, c.Amount)
		if err != nil {
			return err
		}
		c.app.printf("Complete the payment at %s\n", checkout.RedirectURL)
		return nil
	}

	payment, err := client.SubmitManualPayment(ctx, api.ManualPaymentInput{
		Amount:        c.Amount,
		Method:        method,
		SenderNumber:  c.SenderNumber,
		TransactionID: c.TransactionID,
	})
	if err != nil {
		return err
	}
	c.app.printf("Payment %s submitted, status %s\n", payment.ID, payment.Status)
	return nil
}

type paymentsCommand struct {
	app    *app
	Status string `long:"status" choice:"pending" choice:"approved" choice:"rejected"`
}

func (c *paymentsCommand) Execute([]string) error {
	ctx := context.Background()
	client, err := c.app.api(ctx)
	if err != nil {
		return err
	}
	payments, err := client.ListPayments(ctx, enums.PaymentStatus(c.Status))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.app.out, 0, 4, 2, ' ', 0)
	c.app.printTo(w, "DATE\tMETHOD\tAMOUNT\tTRX\tSTATUS\n")
	for _, p := range payments {
		c.app.printTo(w, "%s\t%s\t%.2f\t%s\t%s\n", utils.FormatLocal(p.CreatedAt), p.Method, p.Amount, p.TransactionID, p.Status)
	}
	return w.Flush()
}

type logoutCommand struct {
	app *app
}

func (c *logoutCommand) Execute([]string) error {
	ctx := context.Background()
	client, err := c.app.api(ctx)
	if err != nil {
		return err
	}
	if err := client.Logout(ctx); err != nil {
		return err
	}
	c.app.printf("Signed out\n")
	return nil
}

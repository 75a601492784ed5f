package server

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/flatbank/flatbank/internal/domain/entity"
	errs "github.com/flatbank/flatbank/internal/domain/error"
	"github.com/flatbank/flatbank/internal/domain/port/core"
	"github.com/flatbank/flatbank/internal/domain/usecase/admin"
	"github.com/flatbank/flatbank/internal/domain/usecase/auth"
	"github.com/flatbank/flatbank/internal/domain/usecase/customer"
	"github.com/flatbank/flatbank/internal/domain/usecase/employee"
	"github.com/flatbank/flatbank/internal/domain/usecase/manager"
)

// Session is the per-connection authentication state.
type Session struct {
	User *entity.User
}

// LoggedIn reports whether a user is bound to the connection.
func (s *Session) LoggedIn() bool {
	return s.User != nil
}

// handlerFunc executes one operation for the connection's session.
type handlerFunc func(ctx context.Context, sess *Session, payload string) (string, error)

type route struct {
	roles   []entity.Role // nil means any logged-in user
	handler handlerFunc
}

// Router dispatches operation names to the role services.
type Router struct {
	auth     *auth.Service
	customer *customer.Service
	employee *employee.Service
	manager  *manager.Service
	admin    *admin.Service
	logger   core.Logger
	routes   map[string]route
}

// NewRouter wires the operation table.
func NewRouter(
	authSvc *auth.Service,
	customerSvc *customer.Service,
	employeeSvc *employee.Service,
	managerSvc *manager.Service,
	adminSvc *admin.Service,
	logger core.Logger,
) *Router {
	r := &Router{
		auth:     authSvc,
		customer: customerSvc,
		employee: employeeSvc,
		manager:  managerSvc,
		admin:    adminSvc,
		logger:   logger,
	}

	cust := []entity.Role{entity.RoleCustomer}
	emp := []entity.Role{entity.RoleEmployee}
	mgr := []entity.Role{entity.RoleManager}
	adm := []entity.Role{entity.RoleAdmin}

	r.routes = map[string]route{
		"LOGOUT":          {nil, r.handleLogout},
		"CHANGE_PASSWORD": {nil, r.handleChangePassword},

		"VIEW_BALANCE":      {cust, r.handleViewBalance},
		"DEPOSIT":           {cust, r.handleDeposit},
		"WITHDRAW":          {cust, r.handleWithdraw},
		"TRANSFER":          {cust, r.handleTransfer},
		"APPLY_LOAN":        {cust, r.handleApplyLoan},
		"VIEW_LOAN":         {cust, r.handleViewLoan},
		"ADD_FEEDBACK":      {cust, r.handleAddFeedback},
		"VIEW_FEEDBACK":     {cust, r.handleViewFeedback},
		"VIEW_TRANSACTIONS": {cust, r.handleViewTransactions},
		"VIEW_DETAILS":      {cust, r.handleViewDetails},

		"ADD_CUSTOMER":           {emp, r.handleAddCustomer},
		"MODIFY_CUSTOMER":        {emp, r.handleModifyCustomer},
		"PROCESS_LOANS":          {emp, r.handleProcessLoans},
		"APPROVE_REJECT_LOAN":    {emp, r.handleApproveRejectLoan},
		"VIEW_ASSIGNED_LOANS":    {emp, r.handleViewAssignedLoans},
		"VIEW_CUST_TRANSACTIONS": {emp, r.handleViewCustTransactions},

		"SET_ACCOUNT_STATUS":      {mgr, r.handleSetAccountStatus},
		"VIEW_NON_ASSIGNED_LOANS": {mgr, r.handleViewNonAssignedLoans},
		"ASSIGN_LOAN":             {mgr, r.handleAssignLoan},
		"REVIEW_FEEDBACK":         {mgr, r.handleReviewFeedback},

		"ADD_EMPLOYEE": {adm, r.handleAddEmployee},
		"MODIFY_USER":  {adm, r.handleModifyUser},
		"LIST_USERS":   {adm, r.handleListUsers},
		"CHANGE_ROLE":  {adm, r.handleChangeRole},
	}
	return r
}

// Handle executes one request and renders the outcome as a response frame.
// LOGIN is handled before the table because it is the only operation a
// connection without a session may call.
func (r *Router) Handle(ctx context.Context, sess *Session, op, payload string) (int32, string) {
	if op == "LOGIN" {
		msg, err := r.handleLogin(ctx, sess, payload)
		if err != nil {
			return StatusError, err.Error()
		}
		return StatusOK, msg
	}

	rt, ok := r.routes[op]
	if !ok {
		return StatusError, fmt.Sprintf("unknown operation %q", op)
	}
	if !sess.LoggedIn() {
		return StatusError, "not logged in"
	}
	if rt.roles != nil && !roleAllowed(rt.roles, sess.User.Role) {
		return StatusError, "operation not permitted for your role"
	}

	msg, err := rt.handler(ctx, sess, payload)
	if err != nil {
		return StatusError, err.Error()
	}
	return StatusOK, msg
}

func roleAllowed(roles []entity.Role, role entity.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// fields splits the payload into at most n space-separated fields; the last
// field keeps the remaining text verbatim so free-text tails survive.
func fields(payload string, n int) []string {
	return strings.SplitN(strings.TrimSpace(payload), " ", n)
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint32(v), nil
}

func parseUint64(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return v, nil
}

func parseAge(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid age %q", s)
	}
	return uint8(v), nil
}

func (r *Router) handleLogin(ctx context.Context, sess *Session, payload string) (string, error) {
	if sess.LoggedIn() {
		return "", errs.ErrAlreadyLoggedIn
	}
	f := fields(payload, 2)
	if len(f) != 2 {
		return "", fmt.Errorf("usage: LOGIN <username> <password>")
	}
	user, err := r.auth.Login(ctx, f[0], f[1])
	if err != nil {
		return "", err
	}
	sess.User = user
	return fmt.Sprintf("Welcome %s (role: %s)", user.FullName(), user.Role), nil
}

func (r *Router) handleLogout(_ context.Context, sess *Session, _ string) (string, error) {
	r.auth.Logout(sess.User.ID)
	sess.User = nil
	return "Logged out", nil
}

func (r *Router) handleChangePassword(ctx context.Context, sess *Session, payload string) (string, error) {
	f := fields(payload, 1)
	if len(f) != 1 || f[0] == "" {
		return "", fmt.Errorf("usage: CHANGE_PASSWORD <new password>")
	}
	return r.auth.ChangePassword(ctx, sess.User.ID, f[0])
}

func (r *Router) handleViewBalance(ctx context.Context, sess *Session, _ string) (string, error) {
	return r.customer.ViewBalance(ctx, sess.User.ID)
}

func (r *Router) handleDeposit(ctx context.Context, sess *Session, payload string) (string, error) {
	f := fields(payload, 1)
	if len(f) != 1 || f[0] == "" {
		return "", fmt.Errorf("usage: DEPOSIT <amount>")
	}
	return r.customer.Deposit(ctx, sess.User.ID, f[0])
}

func (r *Router) handleWithdraw(ctx context.Context, sess *Session, payload string) (string, error) {
	f := fields(payload, 1)
	if len(f) != 1 || f[0] == "" {
		return "", fmt.Errorf("usage: WITHDRAW <amount>")
	}
	return r.customer.Withdraw(ctx, sess.User.ID, f[0])
}

func (r *Router) handleTransfer(ctx context.Context, sess *Session, payload string) (string, error) {
	f := fields(payload, 2)
	if len(f) != 2 {
		return "", fmt.Errorf("usage: TRANSFER <to account id> <amount>")
	}
	toID, err := parseUint32(f[0])
	if err != nil {
		return "", err
	}
	return r.customer.Transfer(ctx, sess.User.ID, toID, f[1])
}

func (r *Router) handleApplyLoan(ctx context.Context, sess *Session, payload string) (string, error) {
	f := fields(payload, 1)
	if len(f) != 1 || f[0] == "" {
		return "", fmt.Errorf("usage: APPLY_LOAN <amount>")
	}
	return r.customer.ApplyLoan(ctx, sess.User.ID, f[0])
}

func (r *Router) handleViewLoan(ctx context.Context, sess *Session, _ string) (string, error) {
	return r.customer.ViewLoans(ctx, sess.User.ID)
}

func (r *Router) handleAddFeedback(ctx context.Context, sess *Session, payload string) (string, error) {
	msg := strings.TrimSpace(payload)
	if msg == "" {
		return "", fmt.Errorf("usage: ADD_FEEDBACK <message>")
	}
	return r.customer.AddFeedback(ctx, sess.User.ID, msg)
}

func (r *Router) handleViewFeedback(ctx context.Context, sess *Session, _ string) (string, error) {
	return r.customer.ViewFeedback(ctx, sess.User.ID)
}

func (r *Router) handleViewTransactions(ctx context.Context, sess *Session, _ string) (string, error) {
	return r.customer.ViewTransactions(ctx, sess.User.ID)
}

func (r *Router) handleViewDetails(ctx context.Context, sess *Session, _ string) (string, error) {
	return r.customer.ViewDetails(ctx, sess.User.ID)
}

func (r *Router) handleAddCustomer(ctx context.Context, _ *Session, payload string) (string, error) {
	f := fields(payload, 8)
	if len(f) != 8 {
		return "", fmt.Errorf("usage: ADD_CUSTOMER <first> <last> <age> <address> <email> <phone> <username> <password>")
	}
	age, err := parseAge(f[2])
	if err != nil {
		return "", err
	}
	return r.employee.AddCustomer(ctx, employee.NewCustomerInput{
		FirstName: f[0], LastName: f[1], Age: age, Address: f[3],
		Email: f[4], Phone: f[5], Username: f[6], Password: f[7],
	})
}

func (r *Router) handleModifyCustomer(ctx context.Context, _ *Session, payload string) (string, error) {
	f := fields(payload, 7)
	if len(f) != 7 {
		return "", fmt.Errorf("usage: MODIFY_CUSTOMER <id> <first> <last> <age> <address> <email> <phone>")
	}
	id, err := parseUint32(f[0])
	if err != nil {
		return "", err
	}
	age, err := parseAge(f[3])
	if err != nil {
		return "", err
	}
	return r.employee.ModifyCustomer(ctx, employee.ModifyCustomerInput{
		UserID: id, FirstName: f[1], LastName: f[2], Age: age,
		Address: f[4], Email: f[5], Phone: f[6],
	})
}

func (r *Router) handleProcessLoans(ctx context.Context, _ *Session, _ string) (string, error) {
	return r.employee.ProcessLoans(ctx)
}

func (r *Router) handleApproveRejectLoan(ctx context.Context, sess *Session, payload string) (string, error) {
	f := fields(payload, 3)
	if len(f) < 2 {
		return "", fmt.Errorf("usage: APPROVE_REJECT_LOAN <loan id> <approve|reject> [remarks]")
	}
	loanID, err := parseUint64(f[0])
	if err != nil {
		return "", err
	}
	var approve bool
	switch f[1] {
	case "approve":
		approve = true
	case "reject":
		approve = false
	default:
		return "", fmt.Errorf("decision must be approve or reject, got %q", f[1])
	}
	remarks := ""
	if len(f) == 3 {
		remarks = f[2]
	}
	return r.employee.ApproveRejectLoan(ctx, sess.User.ID, loanID, approve, remarks)
}

func (r *Router) handleViewAssignedLoans(ctx context.Context, sess *Session, _ string) (string, error) {
	return r.employee.ViewAssignedLoans(ctx, sess.User.ID)
}

func (r *Router) handleViewCustTransactions(ctx context.Context, _ *Session, payload string) (string, error) {
	f := fields(payload, 1)
	if len(f) != 1 || f[0] == "" {
		return "", fmt.Errorf("usage: VIEW_CUST_TRANSACTIONS <customer id>")
	}
	id, err := parseUint32(f[0])
	if err != nil {
		return "", err
	}
	return r.employee.ViewCustTransactions(ctx, id)
}

func (r *Router) handleSetAccountStatus(ctx context.Context, _ *Session, payload string) (string, error) {
	f := fields(payload, 2)
	if len(f) != 2 {
		return "", fmt.Errorf("usage: SET_ACCOUNT_STATUS <customer id> <activate|deactivate>")
	}
	id, err := parseUint32(f[0])
	if err != nil {
		return "", err
	}
	var active bool
	switch f[1] {
	case "activate":
		active = true
	case "deactivate":
		active = false
	default:
		return "", fmt.Errorf("status must be activate or deactivate, got %q", f[1])
	}
	return r.manager.SetAccountStatus(ctx, id, active)
}

func (r *Router) handleViewNonAssignedLoans(ctx context.Context, _ *Session, _ string) (string, error) {
	return r.manager.ViewNonAssignedLoans(ctx)
}

func (r *Router) handleAssignLoan(ctx context.Context, _ *Session, payload string) (string, error) {
	f := fields(payload, 2)
	if len(f) != 2 {
		return "", fmt.Errorf("usage: ASSIGN_LOAN <loan id> <employee id>")
	}
	loanID, err := parseUint64(f[0])
	if err != nil {
		return "", err
	}
	empID, err := parseUint32(f[1])
	if err != nil {
		return "", err
	}
	return r.manager.AssignLoan(ctx, loanID, empID)
}

func (r *Router) handleReviewFeedback(ctx context.Context, _ *Session, payload string) (string, error) {
	action := strings.TrimSpace(payload)
	if action == "" {
		action = "reviewed"
	}
	return r.manager.ReviewFeedback(ctx, action)
}

func (r *Router) handleAddEmployee(ctx context.Context, _ *Session, payload string) (string, error) {
	f := fields(payload, 9)
	if len(f) != 9 {
		return "", fmt.Errorf("usage: ADD_EMPLOYEE <first> <last> <age> <address> <email> <phone> <username> <password> <employee|manager>")
	}
	age, err := parseAge(f[2])
	if err != nil {
		return "", err
	}
	return r.admin.AddEmployee(ctx, admin.NewEmployeeInput{
		FirstName: f[0], LastName: f[1], Age: age, Address: f[3],
		Email: f[4], Phone: f[5], Username: f[6], Password: f[7], Role: f[8],
	})
}

func (r *Router) handleModifyUser(ctx context.Context, _ *Session, payload string) (string, error) {
	f := fields(payload, 7)
	if len(f) != 7 {
		return "", fmt.Errorf("usage: MODIFY_USER <id> <first> <last> <age> <address> <email> <phone>")
	}
	id, err := parseUint32(f[0])
	if err != nil {
		return "", err
	}
	age, err := parseAge(f[3])
	if err != nil {
		return "", err
	}
	return r.admin.ModifyUser(ctx, admin.ModifyUserInput{
		UserID: id, FirstName: f[1], LastName: f[2], Age: age,
		Address: f[4], Email: f[5], Phone: f[6],
	})
}

func (r *Router) handleListUsers(ctx context.Context, _ *Session, _ string) (string, error) {
	return r.admin.ListUsers(ctx)
}

func (r *Router) handleChangeRole(ctx context.Context, _ *Session, payload string) (string, error) {
	f := fields(payload, 2)
	if len(f) != 2 {
		return "", fmt.Errorf("usage: CHANGE_ROLE <user id> <employee|manager>")
	}
	id, err := parseUint32(f[0])
	if err != nil {
		return "", err
	}
	return r.admin.ChangeRole(ctx, id, f[1])
}

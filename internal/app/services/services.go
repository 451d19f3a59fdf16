package services

// Services defined in this package:
// - AuthService: registration, login and the current-user lookup
// - UserService: student listing and the role-gated user mutations
// - CompanyService: company listing and the role-gated company mutations

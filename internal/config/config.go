package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Payroll  PayrollConfig
	Verify   VerifyConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// PayrollConfig holds every pay-rule constant. None of these are hardcoded
// in the engine: jurisdictions tune them per deployment.
type PayrollConfig struct {
	Timezone            string
	StandardStart       string // "HH:MM", scheduled clock-in
	StandardEnd         string // "HH:MM", scheduled clock-out
	GraceCutoff         string // "HH:MM", late counting starts strictly after this
	LunchBreakMinutes   int
	WorkingDaysPerMonth int
	HoursPerDay         int
	MoneyScale          int32
	HourScale           int32

	OvertimeMultiplier        decimal.Decimal
	HolidayOvertimeMultiplier decimal.Decimal
	OvertimeDailyCapHours     decimal.Decimal
	OvertimeAutoApproveHours  decimal.Decimal
	OvertimeEscalationHours   decimal.Decimal
	Holidays                  []string // "MM-DD" entries, recurring yearly

	RankAndFileDepartment string
	RankAndFileKeywords   []string

	LeaveMaxCarryOverDays decimal.Decimal
}

// VerifyConfig holds the reconciliation tolerance bands. Salary checks use a
// relative band so tolerance scales with pay; net checks use an absolute
// band so small payslips are not over-flagged.
type VerifyConfig struct {
	SalaryTolerancePct decimal.Decimal // relative, e.g. 0.02 = 2%
	NetToleranceAbs    decimal.Decimal // absolute currency amount
	MaxDeductionShare  decimal.Decimal // deductions may not exceed this share of gross
}

func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("no .env file found, using environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "payroll-engine"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Payroll rule configuration
	lunchMinutes, err := strconv.Atoi(getEnv("PAYROLL_LUNCH_BREAK_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_LUNCH_BREAK_MINUTES: %w", err)
	}
	workingDays, err := strconv.Atoi(getEnv("PAYROLL_WORKING_DAYS_PER_MONTH", "21"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_WORKING_DAYS_PER_MONTH: %w", err)
	}
	hoursPerDay, err := strconv.Atoi(getEnv("PAYROLL_HOURS_PER_DAY", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_HOURS_PER_DAY: %w", err)
	}
	moneyScale, err := strconv.Atoi(getEnv("PAYROLL_MONEY_SCALE", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_MONEY_SCALE: %w", err)
	}
	hourScale, err := strconv.Atoi(getEnv("PAYROLL_HOUR_SCALE", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_HOUR_SCALE: %w", err)
	}

	overtimeMultiplier, err := getEnvDecimal("PAYROLL_OVERTIME_MULTIPLIER", "1.25")
	if err != nil {
		return nil, err
	}
	holidayMultiplier, err := getEnvDecimal("PAYROLL_HOLIDAY_OVERTIME_MULTIPLIER", "1.30")
	if err != nil {
		return nil, err
	}
	overtimeCap, err := getEnvDecimal("PAYROLL_OVERTIME_DAILY_CAP_HOURS", "4")
	if err != nil {
		return nil, err
	}
	autoApprove, err := getEnvDecimal("PAYROLL_OVERTIME_AUTO_APPROVE_HOURS", "2")
	if err != nil {
		return nil, err
	}
	escalation, err := getEnvDecimal("PAYROLL_OVERTIME_ESCALATION_HOURS", "3")
	if err != nil {
		return nil, err
	}
	maxCarryOver, err := getEnvDecimal("LEAVE_MAX_CARRY_OVER_DAYS", "5")
	if err != nil {
		return nil, err
	}

	config.Payroll = PayrollConfig{
		Timezone:            getEnv("PAYROLL_TIMEZONE", "Asia/Manila"),
		StandardStart:       getEnv("PAYROLL_STANDARD_START", "08:00"),
		StandardEnd:         getEnv("PAYROLL_STANDARD_END", "17:00"),
		GraceCutoff:         getEnv("PAYROLL_GRACE_CUTOFF", "08:10"),
		LunchBreakMinutes:   lunchMinutes,
		WorkingDaysPerMonth: workingDays,
		HoursPerDay:         hoursPerDay,
		MoneyScale:          int32(moneyScale),
		HourScale:           int32(hourScale),

		OvertimeMultiplier:        overtimeMultiplier,
		HolidayOvertimeMultiplier: holidayMultiplier,
		OvertimeDailyCapHours:     overtimeCap,
		OvertimeAutoApproveHours:  autoApprove,
		OvertimeEscalationHours:   escalation,
		Holidays:                  getEnvSlice("PAYROLL_HOLIDAYS"),

		RankAndFileDepartment: getEnv("PAYROLL_RANK_AND_FILE_DEPARTMENT", "rank and file"),
		RankAndFileKeywords:   getEnvSliceDefault("PAYROLL_RANK_AND_FILE_KEYWORDS", []string{"rank", "file"}),

		LeaveMaxCarryOverDays: maxCarryOver,
	}

	// Verifier tolerance configuration
	salaryTolerance, err := getEnvDecimal("VERIFY_SALARY_TOLERANCE_PCT", "0.02")
	if err != nil {
		return nil, err
	}
	netTolerance, err := getEnvDecimal("VERIFY_NET_TOLERANCE_ABS", "5.00")
	if err != nil {
		return nil, err
	}
	maxDeductionShare, err := getEnvDecimal("VERIFY_MAX_DEDUCTION_SHARE", "0.9")
	if err != nil {
		return nil, err
	}

	config.Verify = VerifyConfig{
		SalaryTolerancePct: salaryTolerance,
		NetToleranceAbs:    netTolerance,
		MaxDeductionShare:  maxDeductionShare,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Payroll.WorkingDaysPerMonth <= 0 {
		return fmt.Errorf("PAYROLL_WORKING_DAYS_PER_MONTH must be positive")
	}
	if c.Payroll.HoursPerDay <= 0 {
		return fmt.Errorf("PAYROLL_HOURS_PER_DAY must be positive")
	}
	if !c.Verify.SalaryTolerancePct.IsPositive() {
		return fmt.Errorf("VERIFY_SALARY_TOLERANCE_PCT must be positive")
	}
	if c.Verify.NetToleranceAbs.IsNegative() {
		return fmt.Errorf("VERIFY_NET_TOLERANCE_ABS must be non-negative")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDecimal(key, fallback string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(getEnv(key, fallback))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string = strings.Split(value, ",")
	return result
}

func getEnvSliceDefault(env string, fallback []string) []string {
	if value := getEnvSlice(env); len(value) > 0 {
		return value
	}
	return fallback
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/domain"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	DefaultConfigPath   = "config/config.yml"
	DefaultEditablePath = "config/editable.yml"

	SourceKindFile     = "file"
	SourceKindPostgres = "postgres"
)

var (
	ErrReadConfig    = errors.New("erro ao ler arquivo de configuração")
	ErrInvalidConfig = errors.New("configuração inválida")

	ExportFormats = []string{"csv", "xlsx", "parquet"}
)

type Config struct {
	App        App                     `mapstructure:"app"`
	Server     Server                  `mapstructure:"server"`
	Database   Database                `mapstructure:"database"`
	Auth       Auth                    `mapstructure:"auth"`
	Sources    Sources                 `mapstructure:"sources"`
	Sales      Sales                   `mapstructure:"sales"`
	Columns    domain.ColumnDictionary `mapstructure:"columns"`
	Enrichment domain.EnrichmentRules  `mapstructure:"enrichment"`
	Period     domain.Period           `mapstructure:"period"`
	Pipeline   Pipeline                `mapstructure:"pipeline"`
	Export     Export                  `mapstructure:"export"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"dsn"`
	Driver   string `mapstructure:"driver"`
	Password string `mapstructure:"password"`
	URL      string `mapstructure:"url"`
	User     string `mapstructure:"user"`
}

type Auth struct {
	Secret    string            `mapstructure:"secret"`
	TokenTTL  time.Duration     `mapstructure:"token_ttl"`
	Operators []domain.Operator `mapstructure:"operators"`
}

// Source indica de onde vem uma tabela de entrada: arquivo (path/sheet) ou postgres (table)
type Source struct {
	Kind  string `mapstructure:"kind"`
	Path  string `mapstructure:"path"`
	Sheet string `mapstructure:"sheet"`
	Table string `mapstructure:"table"`
}

type Sources struct {
	Universe Source `mapstructure:"universe"`
	Partners Source `mapstructure:"partners"`
}

type Sales struct {
	Dir     string              `mapstructure:"dir"`
	Columns domain.SalesColumns `mapstructure:"columns"`
}

type Pipeline struct {
	CronSchedule string `mapstructure:"cron"`
	Enabled      bool   `mapstructure:"enabled"`
	Join         string `mapstructure:"join"`
	DedupRoster  bool   `mapstructure:"dedup_roster"`
}

type Export struct {
	Dir     string   `mapstructure:"dir"`
	Formats []string `mapstructure:"formats"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.log_level", "info")

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.url", "localhost:5432/padrinazgo")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "root")
	v.SetDefault("database.dsn", "")

	v.SetDefault("auth.secret", "your_secret_key")
	v.SetDefault("auth.token_ttl", "24h")

	v.SetDefault("sources.universe.kind", SourceKindFile)
	v.SetDefault("sources.partners.kind", SourceKindFile)

	sales := domain.DefaultSalesColumns()
	v.SetDefault("sales.dir", "ventas")
	v.SetDefault("sales.columns.customer", sales.Customer)
	v.SetDefault("sales.columns.brand", sales.Brand)
	v.SetDefault("sales.columns.amount", sales.Amount)
	v.SetDefault("sales.columns.volume", sales.Volume)

	rules := domain.DefaultEnrichmentRules()
	v.SetDefault("enrichment.allowed_functions", rules.AllowedFunctions)
	v.SetDefault("enrichment.unassigned", rules.Unassigned)
	v.SetDefault("enrichment.drop_columns", rules.DropColumns)

	v.SetDefault("pipeline.cron", "0 6 * * *") // Todos os dias às 6h da manhã
	v.SetDefault("pipeline.enabled", false)
	v.SetDefault("pipeline.join", string(domain.JoinLeft))
	v.SetDefault("pipeline.dedup_roster", false)

	v.SetDefault("export.dir", "output")
	v.SetDefault("export.formats", []string{})
}

// Load lê o arquivo YAML principal e o arquivo editável com o período de análise.
// Variáveis de ambiente sobrescrevem as chaves (ex.: SERVER_PORT para server.port).
// Falha de leitura do arquivo principal é o único erro fatal da aplicação.
func Load(configPath, editablePath string) (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(ErrReadConfig, "%s: %v", configPath, err)
	}
	logrus.WithField("path", configPath).Info("Configuração carregada com sucesso")

	if editablePath != "" {
		period, err := readEditable(editablePath)
		if err != nil {
			return nil, err
		}
		if err := v.MergeConfigMap(map[string]any{"period": period}); err != nil {
			return nil, errors.Wrap(err, "erro ao mesclar período editável")
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	config := &Config{}
	err := v.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar configuração")
	}

	if config.Database.DSN == "" {
		config.Database.DSN = fmt.Sprintf(
			"%s://%s:%s@%s",
			config.Database.Driver,
			config.Database.User,
			config.Database.Password,
			config.Database.URL,
		)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// readEditable lê o período do arquivo editável; arquivo ausente deixa o período indefinido
func readEditable(path string) (map[string]any, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		logrus.WithField("path", path).Warn("Arquivo editável não encontrado, período não definido")
		return map[string]any{}, nil
	}

	e := viper.New()
	e.SetConfigFile(path)
	e.SetConfigType("yaml")
	if err := e.ReadInConfig(); err != nil {
		logrus.WithError(err).Error("Processo de leitura do arquivo editável falhou")
		return nil, errors.Wrapf(ErrReadConfig, "%s: %v", path, err)
	}

	period := make(map[string]any)
	for _, key := range []string{"start_year", "end_year", "start_month", "end_month"} {
		if e.IsSet(key) {
			period[key] = e.Get(key)
		}
	}
	return period, nil
}

// Validate verifica limites do período, nomes de colunas obrigatórios e opções do pipeline
func (c *Config) Validate() error {
	var problems []string

	for name, month := range map[string]*int{"start_month": c.Period.StartMonth, "end_month": c.Period.EndMonth} {
		if month != nil && (*month < 1 || *month > 12) {
			problems = append(problems, fmt.Sprintf("period.%s deve estar entre 1 e 12", name))
		}
	}
	for name, year := range map[string]*int{"start_year": c.Period.StartYear, "end_year": c.Period.EndYear} {
		if year != nil && (*year < 1000 || *year > 9999) {
			problems = append(problems, fmt.Sprintf("period.%s deve ter 4 dígitos", name))
		}
	}

	required := map[string]string{
		"columns.universo_directa.id_cliente":    c.Columns.Universe.CustomerID,
		"columns.universo_directa.funcion_inter": c.Columns.Universe.AssignmentFunction,
		"columns.base_socios.id_cliente":         c.Columns.Partners.CustomerID,
		"sales.columns.customer":                 c.Sales.Columns.Customer,
		"sales.columns.brand":                    c.Sales.Columns.Brand,
		"sales.columns.amount":                   c.Sales.Columns.Amount,
		"sales.columns.volume":                   c.Sales.Columns.Volume,
	}
	for key, value := range required {
		if strings.TrimSpace(value) == "" {
			problems = append(problems, fmt.Sprintf("%s é obrigatório", key))
		}
	}

	roles := map[string]string{}
	for _, role := range []struct{ key, column string }{
		{"customer", c.Sales.Columns.Customer},
		{"brand", c.Sales.Columns.Brand},
		{"amount", c.Sales.Columns.Amount},
		{"volume", c.Sales.Columns.Volume},
	} {
		if role.column == "" {
			continue
		}
		if other, ok := roles[role.column]; ok {
			problems = append(problems, fmt.Sprintf("sales.columns.%s e sales.columns.%s usam a mesma coluna %q", other, role.key, role.column))
			continue
		}
		roles[role.column] = role.key
	}

	if len(c.Enrichment.AllowedFunctions) == 0 {
		problems = append(problems, "enrichment.allowed_functions não pode ser vazio")
	}

	if _, err := domain.ParseJoinType(c.Pipeline.Join); err != nil {
		problems = append(problems, fmt.Sprintf("pipeline.join inválido: %s", c.Pipeline.Join))
	}

	for name, source := range map[string]Source{"universe": c.Sources.Universe, "partners": c.Sources.Partners} {
		switch source.Kind {
		case SourceKindFile:
			if source.Path == "" {
				problems = append(problems, fmt.Sprintf("sources.%s.path é obrigatório para kind file", name))
			}
		case SourceKindPostgres:
			if source.Table == "" {
				problems = append(problems, fmt.Sprintf("sources.%s.table é obrigatório para kind postgres", name))
			}
		default:
			problems = append(problems, fmt.Sprintf("sources.%s.kind inválido: %s", name, source.Kind))
		}
	}

	for _, format := range c.Export.Formats {
		if !slices.Contains(ExportFormats, strings.ToLower(format)) {
			problems = append(problems, fmt.Sprintf("export.formats não suporta %s", format))
		}
	}

	if len(problems) > 0 {
		slices.Sort(problems)
		return errors.Wrap(ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// JoinType devolve o tipo de junção configurado para o merge de vendas
func (c *Config) JoinType() domain.JoinType {
	how, err := domain.ParseJoinType(c.Pipeline.Join)
	if err != nil {
		return domain.JoinLeft
	}
	return how
}

// UsesDatabase indica se alguma fonte de entrada é uma tabela do postgres
func (c *Config) UsesDatabase() bool {
	return c.Sources.Universe.Kind == SourceKindPostgres || c.Sources.Partners.Kind == SourceKindPostgres
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Debug("Arquivo .env carregado de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}

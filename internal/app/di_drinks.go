package app

import (
	"fmt"

	"github.com/t-lanigan/coffee-shop/internal/config"
	drinksHTTP "github.com/t-lanigan/coffee-shop/internal/drinks/http"
	drinksRepository "github.com/t-lanigan/coffee-shop/internal/drinks/repository"
	drinksUseCase "github.com/t-lanigan/coffee-shop/internal/drinks/usecase"
)

// DrinkRepository returns the drink repository for the configured database driver.
func (c *Container) DrinkRepository() (drinksUseCase.DrinkRepository, error) {
	var err error
	c.drinkRepositoryInit.Do(func() {
		c.drinkRepository, err = c.initDrinkRepository()
		if err != nil {
			c.initErrors["drinkRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["drinkRepository"]; exists {
		return nil, storedErr
	}
	return c.drinkRepository, nil
}

// DrinkUseCase returns the drink use case, instrumented with business metrics.
func (c *Container) DrinkUseCase() (drinksUseCase.DrinkUseCase, error) {
	var err error
	c.drinkUseCaseInit.Do(func() {
		c.drinkUseCase, err = c.initDrinkUseCase()
		if err != nil {
			c.initErrors["drinkUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["drinkUseCase"]; exists {
		return nil, storedErr
	}
	return c.drinkUseCase, nil
}

// DrinkHandler returns the drinks HTTP handler.
func (c *Container) DrinkHandler() (*drinksHTTP.DrinkHandler, error) {
	var err error
	c.drinkHandlerInit.Do(func() {
		c.drinkHandler, err = c.initDrinkHandler()
		if err != nil {
			c.initErrors["drinkHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["drinkHandler"]; exists {
		return nil, storedErr
	}
	return c.drinkHandler, nil
}

func (c *Container) initDrinkRepository() (drinksUseCase.DrinkRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for drink repository: %w", err)
	}

	switch c.config.DBDriver {
	case config.DBDriverMySQL:
		return drinksRepository.NewMySQLDrinkRepository(db), nil
	case config.DBDriverPostgres:
		return drinksRepository.NewPostgreSQLDrinkRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initDrinkUseCase() (drinksUseCase.DrinkUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for drink use case: %w", err)
	}

	drinkRepo, err := c.DrinkRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get drink repository for drink use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for drink use case: %w", err)
	}

	useCase := drinksUseCase.NewDrinkUseCase(txManager, drinkRepo)
	return drinksUseCase.NewDrinkUseCaseWithMetrics(useCase, businessMetrics), nil
}

func (c *Container) initDrinkHandler() (*drinksHTTP.DrinkHandler, error) {
	useCase, err := c.DrinkUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get drink use case for drink handler: %w", err)
	}
	return drinksHTTP.NewDrinkHandler(useCase, c.Logger()), nil
}

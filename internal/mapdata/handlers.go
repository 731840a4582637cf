package mapdata

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/", func(c *fiber.Ctx) error {
		resp, err := svc.MapData(c.Context())
		if err != nil {
			log.Printf("map data request failed: %v", err)
			return fiber.NewError(fiber.StatusBadGateway, "upstream fetch failed")
		}
		return c.JSON(resp)
	})
}

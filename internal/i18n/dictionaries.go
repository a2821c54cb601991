package i18n

import "github.com/mohandalborai/ShopSphere/internal/models"

var dictionaries = map[string]Dictionary{
	models.LangEnglish: en,
	models.LangArabic:  ar,
}

var en = Dictionary{
	"home":                  "Home",
	"products":              "Products",
	"categories":            "Categories",
	"cart":                  "Cart",
	"wishlist":              "Wishlist",
	"orders":                "My Orders",
	"checkout":              "Checkout",
	"search_placeholder":    "Search products...",
	"add_to_cart":           "Add to Cart",
	"remove_from_cart":      "Remove",
	"clear_cart":            "Clear Cart",
	"cart_empty":            "Your cart is empty",
	"wishlist_empty":        "Your wishlist is empty",
	"added_to_wishlist":     "{title} added to wishlist",
	"removed_from_wishlist": "{title} removed from wishlist",
	"subtotal":              "Subtotal",
	"tax":                   "Tax",
	"total":                 "Total",
	"in_stock":              "In Stock ({count} available)",
	"out_of_stock":          "Out of Stock",
	"login":                 "Login",
	"logout":                "Logout",
	"register":              "Create Account",
	"email":                 "Email",
	"password":              "Password",
	"name":                  "Name",
	"welcome_back":          "Welcome back, {name}!",
	"invalid_credentials":   "Invalid email or password",
	"weak_password":         "Password must be at least 8 characters long.",
	"required_field":        "This field is required",
	"invalid_email":         "Please enter a valid email address",
	"card_length_error":     "Card number must be at least 16 digits",
	"cvv_length_error":      "CVV must be at least 3 digits",
	"order_placed":          "Order placed successfully!",
	"order_status":          "Status",
	"order_date":            "Ordered on {date}",
	"order_not_found":       "Order not found",
	"processing":            "Processing",
	"shipped":               "Shipped",
	"delivered":             "Delivered",
	"cancelled":             "Cancelled",
	"retry":                 "Try Again",
	"loading":               "Loading...",
	"fetch_error":           "Something went wrong while loading products",
}

var ar = Dictionary{
	"home":                  "الرئيسية",
	"products":              "المنتجات",
	"categories":            "التصنيفات",
	"cart":                  "عربة التسوق",
	"wishlist":              "المفضلة",
	"orders":                "طلباتي",
	"checkout":              "إتمام الشراء",
	"search_placeholder":    "ابحث عن المنتجات...",
	"add_to_cart":           "أضف إلى العربة",
	"remove_from_cart":      "إزالة",
	"clear_cart":            "إفراغ العربة",
	"cart_empty":            "عربة التسوق فارغة",
	"wishlist_empty":        "قائمة المفضلة فارغة",
	"added_to_wishlist":     "تمت إضافة {title} إلى المفضلة",
	"removed_from_wishlist": "تمت إزالة {title} من المفضلة",
	"subtotal":              "المجموع الفرعي",
	"tax":                   "الضريبة",
	"total":                 "الإجمالي",
	"in_stock":              "متوفر ({count} قطعة)",
	"out_of_stock":          "غير متوفر",
	"login":                 "تسجيل الدخول",
	"logout":                "تسجيل الخروج",
	"register":              "إنشاء حساب",
	"email":                 "البريد الإلكتروني",
	"password":              "كلمة المرور",
	"name":                  "الاسم",
	"welcome_back":          "مرحباً بعودتك، {name}!",
	"invalid_credentials":   "البريد الإلكتروني أو كلمة المرور غير صحيحة",
	"weak_password":         "يجب أن تتكون كلمة المرور من 8 أحرف على الأقل.",
	"required_field":        "هذا الحقل مطلوب",
	"invalid_email":         "يرجى إدخال بريد إلكتروني صحيح",
	"card_length_error":     "يجب أن يتكون رقم البطاقة من 16 رقماً على الأقل",
	"cvv_length_error":      "يجب أن يتكون رمز الأمان من 3 أرقام على الأقل",
	"order_placed":          "تم تقديم الطلب بنجاح!",
	"order_status":          "الحالة",
	"order_date":            "تم الطلب في {date}",
	"order_not_found":       "الطلب غير موجود",
	"processing":            "قيد المعالجة",
	"shipped":               "تم الشحن",
	"delivered":             "تم التوصيل",
	"cancelled":             "ملغي",
	"retry":                 "حاول مرة أخرى",
	"loading":               "جارٍ التحميل...",
	"fetch_error":           "حدث خطأ أثناء تحميل المنتجات",
}
